package todo

import "errors"

// Sentinel errors for todo operations.
var (
	// ErrEmptyTitle is returned when a todo is created with a blank title.
	ErrEmptyTitle = errors.New("title is required")

	// ErrTodoNotFound is returned when no todo has the requested id.
	ErrTodoNotFound = errors.New("todo not found")
)
