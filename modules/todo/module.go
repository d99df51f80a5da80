package todo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/daily-todos/events"
	"github.com/example/daily-todos/modules/history"
	"github.com/example/daily-todos/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/sirupsen/logrus"
)

// Module provides todo list services (core domain).
type Module struct {
	store       *Store
	historyPort history.HistoryPort
	eventBus    mono.EventBus
	log         logrus.FieldLogger
}

var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the todo module persisting through kv. The archive is
// attached once the history dependency is wired.
func NewModule(kv storage.KVStore, log logrus.FieldLogger, cfg StoreConfig) *Module {
	log = log.WithField("module", "todo")
	return &Module{
		store: NewStore(kv, nil, log, cfg),
		log:   log,
	}
}

func (m *Module) Name() string {
	return "todo"
}

// Store returns the underlying store.
func (m *Module) Store() *Store {
	return m.store
}

func (m *Module) Dependencies() []string {
	return []string{"history"}
}

func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "history" {
		m.historyPort = history.NewHistoryAdapter(container)
		m.store.SetArchiver(m.historyPort)
	}
}

func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TodoAddedV1.ToBase(),
		events.TodoToggledV1.ToBase(),
		events.TodoRemovedV1.ToBase(),
	}
}

func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "add-todo", json.Unmarshal, json.Marshal, m.addTodo,
	); err != nil {
		return fmt.Errorf("failed to register add-todo service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "toggle-todo", json.Unmarshal, json.Marshal, m.toggleTodo,
	); err != nil {
		return fmt.Errorf("failed to register toggle-todo service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "remove-todo", json.Unmarshal, json.Marshal, m.removeTodo,
	); err != nil {
		return fmt.Errorf("failed to register remove-todo service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-todos", json.Unmarshal, json.Marshal, m.listTodos,
	); err != nil {
		return fmt.Errorf("failed to register list-todos service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "reload-todos", json.Unmarshal, json.Marshal, m.reloadTodos,
	); err != nil {
		return fmt.Errorf("failed to register reload-todos service: %w", err)
	}

	m.log.Info("Registered services: add-todo, toggle-todo, remove-todo, list-todos, reload-todos")
	return nil
}

// Health reports the size of the live list.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	todos := m.store.List()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"todos":  len(todos),
			"active": countActive(todos),
		},
	}
}

// Start loads the persisted list. The history dependency must be wired.
func (m *Module) Start(ctx context.Context) error {
	if m.historyPort == nil {
		return fmt.Errorf("historyPort dependency not set")
	}
	if m.eventBus == nil {
		m.log.Warn("eventBus not set, events will not be published")
	}
	todos := m.store.Load(ctx)
	m.log.WithField("todos", len(todos)).Info("Module started (depends on: history)")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.log.Info("Module stopped")
	return nil
}
