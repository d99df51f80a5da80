package feedback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/daily-todos/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/sirupsen/logrus"
)

// Intensity is the strength of a feedback pulse.
type Intensity string

const (
	Light  Intensity = "light"
	Medium Intensity = "medium"
	Heavy  Intensity = "heavy"
)

// DefaultCapacity bounds the pulse log.
const DefaultCapacity = 100

// Pulse is one recorded feedback signal.
type Pulse struct {
	TodoID    string    `json:"todo_id"`
	Event     string    `json:"event"`
	Intensity Intensity `json:"intensity"`
	Timestamp time.Time `json:"timestamp"`
}

// Module turns todo events into feedback pulses: light on add, medium on
// toggle, heavy on remove. It is fire-and-forget and never affects the store.
type Module struct {
	log      logrus.FieldLogger
	capacity int

	mu     sync.RWMutex
	pulses []Pulse
	counts map[Intensity]int
}

var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a feedback module keeping at most capacity pulses.
func NewModule(log logrus.FieldLogger, capacity int) *Module {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Module{
		log:      log.WithField("module", "feedback"),
		capacity: capacity,
		pulses:   make([]Pulse, 0, capacity),
		counts:   make(map[Intensity]int),
	}
}

func (m *Module) Name() string {
	return "feedback"
}

func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoAddedV1, m.handleTodoAdded, m); err != nil {
		return fmt.Errorf("failed to register TodoAdded consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoToggledV1, m.handleTodoToggled, m); err != nil {
		return fmt.Errorf("failed to register TodoToggled consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoRemovedV1, m.handleTodoRemoved, m); err != nil {
		return fmt.Errorf("failed to register TodoRemoved consumer: %w", err)
	}

	m.log.Info("Registered event consumers: TodoAdded, TodoToggled, TodoRemoved")
	return nil
}

func (m *Module) handleTodoAdded(_ context.Context, event events.TodoAddedEvent, _ *mono.Msg) error {
	m.record(event.TodoID, "todo_added", Light)
	return nil
}

func (m *Module) handleTodoToggled(_ context.Context, event events.TodoToggledEvent, _ *mono.Msg) error {
	m.record(event.TodoID, "todo_toggled", Medium)
	return nil
}

func (m *Module) handleTodoRemoved(_ context.Context, event events.TodoRemovedEvent, _ *mono.Msg) error {
	m.record(event.TodoID, "todo_removed", Heavy)
	return nil
}

func (m *Module) record(id, event string, intensity Intensity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pulses) == m.capacity {
		copy(m.pulses, m.pulses[1:])
		m.pulses = m.pulses[:len(m.pulses)-1]
	}
	m.pulses = append(m.pulses, Pulse{
		TodoID:    id,
		Event:     event,
		Intensity: intensity,
		Timestamp: time.Now(),
	})
	m.counts[intensity]++

	m.log.WithFields(logrus.Fields{
		"id":        id,
		"event":     event,
		"intensity": intensity,
	}).Debug("Feedback pulse")
}

// Pulses returns the recorded pulses, oldest first.
func (m *Module) Pulses() []Pulse {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Pulse, len(m.pulses))
	copy(result, m.pulses)
	return result
}

// Health reports pulse totals by intensity.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"light":  m.counts[Light],
			"medium": m.counts[Medium],
			"heavy":  m.counts[Heavy],
		},
	}
}

func (m *Module) Start(_ context.Context) error {
	m.log.Info("Module started - listening for todo events")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.log.Info("Module stopped")
	return nil
}
