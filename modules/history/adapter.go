package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/daily-todos/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// historyAdapter wraps ServiceContainer for type-safe cross-module communication.
type historyAdapter struct {
	container mono.ServiceContainer
}

// NewHistoryAdapter creates a new adapter for history services.
// container is the ServiceContainer from the history module received via SetDependencyServiceContainer.
func NewHistoryAdapter(container mono.ServiceContainer) HistoryPort {
	if container == nil {
		panic("history adapter requires non-nil ServiceContainer")
	}
	return &historyAdapter{container: container}
}

// Upsert snapshots todos as today's entry via the upsert-history service.
func (a *historyAdapter) Upsert(ctx context.Context, todos []todo.Todo) error {
	req := UpsertHistoryRequest{Todos: todos}
	var resp UpsertHistoryResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"upsert-history",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("upsert-history service call failed: %w", err)
	}
	return nil
}

// List reads the archive, newest first, via the list-history service.
func (a *historyAdapter) List(ctx context.Context, limit int) (*ListHistoryResponse, error) {
	req := ListHistoryRequest{Limit: limit}
	var resp ListHistoryResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-history",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-history service call failed: %w", err)
	}
	return &resp, nil
}
