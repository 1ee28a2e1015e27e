package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/toumakido/todolist/internal/model"
	"github.com/toumakido/todolist/internal/store"
)

// TodoStore is the storage the handlers need.
type TodoStore interface {
	List() []model.Todo
	FindByID(id int) (model.Todo, error)
	Insert(text string) (model.Todo, error)
	Update(id int, patch model.Patch) (model.Todo, error)
	Remove(id int) error
}

// TodoHandler handles HTTP requests for todos
type TodoHandler struct {
	store        TodoStore
	maxBodyBytes int64
	logger       *slog.Logger
}

// HandlerOption configures a TodoHandler.
type HandlerOption func(*TodoHandler)

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(h *TodoHandler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used for unexpected store errors.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *TodoHandler) {
		h.logger = l
	}
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(s TodoStore, opts ...HandlerOption) *TodoHandler {
	h := &TodoHandler{
		store:        s,
		maxBodyBytes: DefaultMaxBodyBytes,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// List handles GET /api/todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.List())
}

// Create handles POST /api/todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTodoRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondBodyError(w, err)
		return
	}

	if req.Text == nil {
		respondError(w, http.StatusBadRequest, "Text is required")
		return
	}

	todo, err := h.store.Insert(*req.Text)
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, todo)
}

// Update handles PATCH /api/todos/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request, id int) {
	if _, err := h.store.FindByID(id); err != nil {
		h.respondStoreError(w, r, err)
		return
	}

	var req model.UpdateTodoRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		respondBodyError(w, err)
		return
	}

	todo, err := h.store.Update(id, req.Patch())
	if err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

// Delete handles DELETE /api/todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request, id int) {
	if err := h.store.Remove(id); err != nil {
		h.respondStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrEmptyText):
		respondError(w, http.StatusBadRequest, "Text is required")
	default:
		h.logger.ErrorContext(r.Context(), "store operation failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
