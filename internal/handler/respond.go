package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/toumakido/todolist/internal/model"
)

var (
	errInvalidBody  = errors.New("invalid request body")
	errBodyTooLarge = errors.New("request body too large")
)

// DefaultMaxBodyBytes caps request bodies when the handler is built without an explicit limit.
const DefaultMaxBodyBytes int64 = 1 << 20

// decodeJSON reads the whole body (bounded by limit) and unmarshals it into v.
// An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	w.Write(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, model.ErrorResponse{Error: message})
}

// respondBodyError maps a decodeJSON failure to its response.
func respondBodyError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	respondError(w, http.StatusBadRequest, "Invalid request body")
}
