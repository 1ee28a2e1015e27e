package model

import "time"

// TimeLayout is the ISO-8601 form used for Created: UTC, millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Todo is the single resource managed by the service.
type Todo struct {
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Done    bool   `json:"done"`
	Created string `json:"created"`
}

// Timestamp formats t the way Created is stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// CreateTodoRequest is the body of POST /api/todos.
type CreateTodoRequest struct {
	Text *string `json:"text"`
}

// UpdateTodoRequest is the body of PATCH /api/todos/{id}.
// A nil field means "leave unchanged".
type UpdateTodoRequest struct {
	Text *string `json:"text,omitempty"`
	Done *bool   `json:"done,omitempty"`
}

// Patch is the set of optional changes applied to a stored Todo.
type Patch struct {
	Text *string
	Done *bool
}

// Patch converts the request body into a store patch.
func (r UpdateTodoRequest) Patch() Patch {
	return Patch{Text: r.Text, Done: r.Done}
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
