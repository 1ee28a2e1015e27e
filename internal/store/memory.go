package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/toumakido/todolist/internal/model"
)

var (
	ErrNotFound  = errors.New("todo not found")
	ErrEmptyText = errors.New("todo text is empty")
)

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithSeed pre-populates the store. The id counter continues after the
// highest seeded id.
func WithSeed(todos ...model.Todo) Option {
	return func(s *MemoryStore) {
		for _, t := range todos {
			s.todos = append(s.todos, t)
			if t.ID >= s.nextID {
				s.nextID = t.ID + 1
			}
		}
	}
}

// WithClock replaces time.Now as the source of Created stamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// DefaultSeed returns the two records the service starts with.
func DefaultSeed(now time.Time) []model.Todo {
	created := model.Timestamp(now)
	return []model.Todo{
		{ID: 1, Text: "Build something amazing", Done: false, Created: created},
		{ID: 2, Text: "Learn TypeScript deeply", Done: true, Created: created},
	}
}

// MemoryStore is an in-memory, insertion-ordered todo storage
type MemoryStore struct {
	mu     sync.RWMutex
	todos  []model.Todo
	nextID int
	now    func() time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all todos in insertion order
func (s *MemoryStore) List() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]model.Todo, len(s.todos))
	copy(todos, s.todos)
	return todos
}

// FindByID returns a todo by ID
func (s *MemoryStore) FindByID(id int) (model.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Todo{}, ErrNotFound
	}
	return s.todos[i], nil
}

// Insert appends a new todo with the next id
func (s *MemoryStore) Insert(text string) (model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Todo{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todo := model.Todo{
		ID:      s.nextID,
		Text:    text,
		Done:    false,
		Created: model.Timestamp(s.now()),
	}
	s.todos = append(s.todos, todo)
	s.nextID++
	return todo, nil
}

// Update applies the fields present in patch to an existing todo
func (s *MemoryStore) Update(id int, patch model.Patch) (model.Todo, error) {
	var text string
	if patch.Text != nil {
		text = strings.TrimSpace(*patch.Text)
		if text == "" {
			return model.Todo{}, ErrEmptyText
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Todo{}, ErrNotFound
	}

	todo := &s.todos[i]
	if patch.Text != nil {
		todo.Text = text
	}
	if patch.Done != nil {
		todo.Done = *patch.Done
	}
	return *todo, nil
}

// Remove deletes a todo by ID
func (s *MemoryStore) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(id int) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
