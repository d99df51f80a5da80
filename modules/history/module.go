package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/daily-todos/domain/todo"
	"github.com/example/daily-todos/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Module exposes the Archive as request-reply services.
type Module struct {
	archive *Archive
	log     logrus.FieldLogger
	sfGroup singleflight.Group // collapses concurrent archive reads
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the history module over kv.
func NewModule(kv storage.KVStore, log logrus.FieldLogger, cfg Config) *Module {
	log = log.WithField("module", "history")
	return &Module{
		archive: NewArchive(kv, log, cfg),
		log:     log,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "history"
}

// Archive returns the underlying archive.
func (m *Module) Archive() *Archive {
	return m.archive
}

// RegisterServices registers history services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "upsert-history", json.Unmarshal, json.Marshal, m.upsertHistory,
	); err != nil {
		return fmt.Errorf("failed to register upsert-history service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-history", json.Unmarshal, json.Marshal, m.listHistory,
	); err != nil {
		return fmt.Errorf("failed to register list-history service: %w", err)
	}

	m.log.Info("Registered services: upsert-history, list-history")
	return nil
}

func (m *Module) upsertHistory(ctx context.Context, req UpsertHistoryRequest, _ *mono.Msg) (UpsertHistoryResponse, error) {
	if err := m.archive.Upsert(ctx, req.Todos); err != nil {
		return UpsertHistoryResponse{}, err
	}
	return UpsertHistoryResponse{Date: m.archive.Today()}, nil
}

func (m *Module) listHistory(ctx context.Context, req ListHistoryRequest, _ *mono.Msg) (ListHistoryResponse, error) {
	return m.list(ctx, req.Limit), nil
}

// list builds the listing response; limit <= 0 returns every entry.
func (m *Module) list(ctx context.Context, limit int) ListHistoryResponse {
	days := m.load(ctx)
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}

	resp := ListHistoryResponse{
		Days:  make([]DayResponse, 0, len(days)),
		Total: len(days),
	}
	for _, day := range days {
		resp.Days = append(resp.Days, toDayResponse(day))
	}
	return resp
}

// load reads the archive once for any number of concurrent callers. The
// result is shared and must not be modified. The shared read is detached from
// the first caller's cancellation and bounded by storage.DefaultTimeout.
func (m *Module) load(ctx context.Context) []todo.DailyTodos {
	val, _, _ := m.sfGroup.Do("history", func() (any, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storage.DefaultTimeout)
		defer cancel()
		return m.archive.Load(readCtx), nil
	})
	return val.([]todo.DailyTodos)
}

// Health reports the archive size.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"entries":   len(m.load(ctx)),
			"retention": m.archive.Retention(),
		},
	}
}

// Start logs the archive configuration.
func (m *Module) Start(_ context.Context) error {
	m.log.WithFields(logrus.Fields{
		"retention": m.archive.Retention(),
		"location":  m.archive.cfg.Location.String(),
	}).Info("Module started")
	return nil
}

// Stop is a no-op; the storage module owns the backend.
func (m *Module) Stop(_ context.Context) error {
	m.log.Info("Module stopped")
	return nil
}
