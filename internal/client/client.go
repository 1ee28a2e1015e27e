// Package client talks to the todo API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/toumakido/todolist/internal/model"
)

// ErrNotFound is matched by an APIError with status 404.
var ErrNotFound = errors.New("todo not found")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// Is makes errors.Is(err, ErrNotFound) work for 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client is a todo API client. The zero value is not usable; call New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the server at baseURL, e.g. "http://localhost:3000".
// A nil hc gets a client with a 10 second timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// List returns every todo in server order.
func (c *Client) List(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Create adds a todo.
func (c *Client) Create(ctx context.Context, text string) (model.Todo, error) {
	var todo model.Todo
	err := c.do(ctx, http.MethodPost, "/api/todos", model.CreateTodoRequest{Text: &text}, &todo)
	return todo, err
}

// Update patches the fields set in req.
func (c *Client) Update(ctx context.Context, id int, req model.UpdateTodoRequest) (model.Todo, error) {
	var todo model.Todo
	err := c.do(ctx, http.MethodPatch, todoPath(id), req, &todo)
	return todo, err
}

// Delete removes a todo.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

func todoPath(id int) string {
	return "/api/todos/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var env model.ErrorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &env) != nil || env.Error == "" {
			env.Error = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
