package todo

import (
	"context"
	"time"

	domain "github.com/example/daily-todos/domain/todo"
	"github.com/example/daily-todos/events"
	"github.com/go-monolith/mono"
)

// addTodo handles the add-todo service request.
func (m *Module) addTodo(ctx context.Context, req AddTodoRequest, _ *mono.Msg) (domain.Todo, error) {
	created, err := m.store.Add(ctx, req.Title, req.Description)
	if err != nil {
		return domain.Todo{}, err
	}

	if m.eventBus != nil {
		event := events.TodoAddedEvent{
			TodoID:    created.ID,
			Title:     created.Title,
			CreatedAt: created.CreatedAt,
		}
		if err := events.TodoAddedV1.Publish(m.eventBus, event, nil); err != nil {
			m.log.WithError(err).WithField("id", created.ID).Warn("Failed to publish TodoAdded event")
		}
	}

	return created, nil
}

// toggleTodo handles the toggle-todo service request.
func (m *Module) toggleTodo(ctx context.Context, req ToggleTodoRequest, _ *mono.Msg) (domain.Todo, error) {
	toggled, err := m.store.Toggle(ctx, req.ID)
	if err != nil {
		return domain.Todo{}, err
	}

	if m.eventBus != nil {
		event := events.TodoToggledEvent{
			TodoID:      toggled.ID,
			Completed:   toggled.Completed,
			CompletedAt: toggled.CompletedAt,
		}
		if err := events.TodoToggledV1.Publish(m.eventBus, event, nil); err != nil {
			m.log.WithError(err).WithField("id", toggled.ID).Warn("Failed to publish TodoToggled event")
		}
	}

	return toggled, nil
}

// removeTodo handles the remove-todo service request.
func (m *Module) removeTodo(ctx context.Context, req RemoveTodoRequest, _ *mono.Msg) (RemoveTodoResponse, error) {
	if err := m.store.Remove(ctx, req.ID); err != nil {
		return RemoveTodoResponse{Removed: false}, err
	}

	if m.eventBus != nil {
		event := events.TodoRemovedEvent{
			TodoID:    req.ID,
			RemovedAt: time.Now().UTC(),
		}
		if err := events.TodoRemovedV1.Publish(m.eventBus, event, nil); err != nil {
			m.log.WithError(err).WithField("id", req.ID).Warn("Failed to publish TodoRemoved event")
		}
	}

	return RemoveTodoResponse{Removed: true}, nil
}

// listTodos handles the list-todos service request.
func (m *Module) listTodos(_ context.Context, req ListTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	return listResponse(m.store.List(), req.Filter)
}

// reloadTodos handles the reload-todos service request.
func (m *Module) reloadTodos(ctx context.Context, _ ReloadTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	return listResponse(m.store.Reload(ctx), FilterAll)
}

// listResponse applies filter and counts both partitions of the full list.
func listResponse(todos []domain.Todo, filter string) (ListTodosResponse, error) {
	active, completed := domain.Partition(todos)

	var selected []domain.Todo
	switch filter {
	case FilterAll:
		selected = todos
	case FilterActive:
		selected = active
	case FilterCompleted:
		selected = completed
	default:
		return ListTodosResponse{}, ErrInvalidFilter
	}

	return ListTodosResponse{
		Todos:     selected,
		Total:     len(selected),
		Active:    len(active),
		Completed: len(completed),
	}, nil
}
