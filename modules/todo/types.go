package todo

import (
	"context"

	domain "github.com/example/daily-todos/domain/todo"
)

// List filters accepted by list-todos.
const (
	FilterAll       = ""
	FilterActive    = "active"
	FilterCompleted = "completed"
)

// AddTodoRequest is the request for creating a todo.
type AddTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ToggleTodoRequest is the request for flipping a todo's completion.
type ToggleTodoRequest struct {
	ID string `json:"id"`
}

// RemoveTodoRequest is the request for deleting a todo.
type RemoveTodoRequest struct {
	ID string `json:"id"`
}

// RemoveTodoResponse is the response for deleting a todo.
type RemoveTodoResponse struct {
	Removed bool `json:"removed"`
}

// ListTodosRequest is the request for listing todos.
type ListTodosRequest struct {
	Filter string `json:"filter,omitempty"`
}

// ReloadTodosRequest is the request for re-reading the persisted list.
type ReloadTodosRequest struct{}

// ListTodosResponse is the response for listing todos.
type ListTodosResponse struct {
	Todos     []domain.Todo `json:"todos"`
	Total     int           `json:"total"`
	Active    int           `json:"active"`
	Completed int           `json:"completed"`
}

// TodoPort defines the todo operations driving adapters use.
type TodoPort interface {
	AddTodo(ctx context.Context, title, description string) (domain.Todo, error)
	ToggleTodo(ctx context.Context, id string) (domain.Todo, error)
	RemoveTodo(ctx context.Context, id string) error
	ListTodos(ctx context.Context, filter string) (*ListTodosResponse, error)
	ReloadTodos(ctx context.Context) (*ListTodosResponse, error)
}
