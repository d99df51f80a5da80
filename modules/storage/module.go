package storage

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/sirupsen/logrus"
)

// Module owns the lifecycle of the opened storage backend.
type Module struct {
	backend Backend
	store   KVStore
	log     logrus.FieldLogger
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule wraps an opened backend. Consumers persist through Store().
func NewModule(backend Backend, log logrus.FieldLogger) *Module {
	return &Module{
		backend: backend,
		store:   Instrument(backend),
		log:     log.WithField("module", "storage"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "storage"
}

// Store returns the instrumented key-value store.
func (m *Module) Store() KVStore {
	return m.store
}

// Health pings the backend.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.backend == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "storage not initialized",
		}
	}

	if err := m.backend.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("%s ping failed: %v", m.backend.Name(), err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"backend": m.backend.Name(),
		},
	}
}

// Start verifies the backend is reachable.
func (m *Module) Start(ctx context.Context) error {
	if m.backend == nil {
		return fmt.Errorf("storage backend not set")
	}
	if err := m.backend.Ping(ctx); err != nil {
		return fmt.Errorf("storage backend %s unreachable: %w", m.backend.Name(), err)
	}
	m.log.WithField("backend", m.backend.Name()).Info("Module started")
	return nil
}

// Stop closes the backend connection.
func (m *Module) Stop(_ context.Context) error {
	if m.backend == nil {
		return nil
	}
	if err := m.backend.Close(); err != nil {
		return fmt.Errorf("failed to close %s backend: %w", m.backend.Name(), err)
	}
	m.log.Info("Storage closed")
	return nil
}
