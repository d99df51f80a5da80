package todo

import (
	"context"
	"encoding/json"

	domain "github.com/example/daily-todos/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// todoAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TodoPort interface.
type todoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a new adapter for todo services.
// container is the ServiceContainer from the todo module received via SetDependencyServiceContainer.
func NewTodoAdapter(container mono.ServiceContainer) TodoPort {
	if container == nil {
		panic("todo adapter requires non-nil ServiceContainer")
	}
	return &todoAdapter{container: container}
}

// AddTodo creates a todo via the add-todo service.
func (a *todoAdapter) AddTodo(ctx context.Context, title, description string) (domain.Todo, error) {
	req := AddTodoRequest{Title: title, Description: description}
	var resp domain.Todo
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"add-todo",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Todo{}, mapServiceError(err)
	}
	return resp, nil
}

// ToggleTodo flips completion via the toggle-todo service.
func (a *todoAdapter) ToggleTodo(ctx context.Context, id string) (domain.Todo, error) {
	req := ToggleTodoRequest{ID: id}
	var resp domain.Todo
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"toggle-todo",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Todo{}, mapServiceError(err)
	}
	return resp, nil
}

// RemoveTodo deletes a todo via the remove-todo service.
func (a *todoAdapter) RemoveTodo(ctx context.Context, id string) error {
	req := RemoveTodoRequest{ID: id}
	var resp RemoveTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"remove-todo",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return mapServiceError(err)
	}
	if !resp.Removed {
		return domain.ErrTodoNotFound
	}
	return nil
}

// ListTodos lists todos, optionally filtered, via the list-todos service.
func (a *todoAdapter) ListTodos(ctx context.Context, filter string) (*ListTodosResponse, error) {
	req := ListTodosRequest{Filter: filter}
	var resp ListTodosResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-todos",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}
	return &resp, nil
}

// ReloadTodos re-reads the persisted list via the reload-todos service.
func (a *todoAdapter) ReloadTodos(ctx context.Context) (*ListTodosResponse, error) {
	var req ReloadTodosRequest
	var resp ListTodosResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"reload-todos",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}
	return &resp, nil
}
