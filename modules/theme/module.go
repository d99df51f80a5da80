package theme

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/daily-todos/domain/theme"
	"github.com/example/daily-todos/events"
	"github.com/example/daily-todos/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/sirupsen/logrus"
)

// Module exposes theme preferences as services and announces OS appearance
// changes on the event bus.
type Module struct {
	prefs    *Preferences
	eventBus mono.EventBus
	log      logrus.FieldLogger
}

var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)

// NewModule creates the theme module persisting through kv.
func NewModule(kv storage.KVStore, log logrus.FieldLogger) *Module {
	log = log.WithField("module", "theme")
	return &Module{
		prefs: NewPreferences(kv, log),
		log:   log,
	}
}

func (m *Module) Name() string {
	return "theme"
}

// Preferences returns the underlying preference state.
func (m *Module) Preferences() *Preferences {
	return m.prefs
}

func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.AppearanceChangedV1.ToBase(),
	}
}

func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-theme", json.Unmarshal, json.Marshal, m.getTheme,
	); err != nil {
		return fmt.Errorf("failed to register get-theme service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "set-theme", json.Unmarshal, json.Marshal, m.setTheme,
	); err != nil {
		return fmt.Errorf("failed to register set-theme service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "set-appearance", json.Unmarshal, json.Marshal, m.setAppearance,
	); err != nil {
		return fmt.Errorf("failed to register set-appearance service: %w", err)
	}

	m.log.Info("Registered services: get-theme, set-theme, set-appearance")
	return nil
}

func (m *Module) getTheme(_ context.Context, _ GetThemeRequest, _ *mono.Msg) (ThemeResponse, error) {
	return m.snapshot(), nil
}

func (m *Module) setTheme(ctx context.Context, req SetThemeRequest, _ *mono.Msg) (ThemeResponse, error) {
	t, err := domain.Parse(req.Theme)
	if err != nil {
		return ThemeResponse{}, err
	}
	if err := m.prefs.SetTheme(ctx, t); err != nil {
		return ThemeResponse{}, err
	}
	return m.snapshot(), nil
}

// setAppearance applies the OS appearance and announces it. The module does
// not consume its own AppearanceChanged event.
func (m *Module) setAppearance(_ context.Context, req SetAppearanceRequest, _ *mono.Msg) (ThemeResponse, error) {
	a := domain.ParseAppearance(req.Appearance)
	m.prefs.SetSystemAppearance(a)
	m.log.WithField("appearance", a).Debug("OS appearance changed")

	if m.eventBus != nil {
		event := events.AppearanceChangedEvent{Appearance: string(a)}
		if err := events.AppearanceChangedV1.Publish(m.eventBus, event, nil); err != nil {
			m.log.WithError(err).Warn("Failed to publish AppearanceChanged event")
		}
	}
	return m.snapshot(), nil
}

func (m *Module) snapshot() ThemeResponse {
	return ThemeResponse{
		Theme:      string(m.prefs.Theme()),
		Appearance: string(m.prefs.Appearance()),
		IsDark:     m.prefs.IsDark(),
		Palette:    m.prefs.Palette(),
	}
}

// Start loads the persisted preference.
func (m *Module) Start(ctx context.Context) error {
	t := m.prefs.Load(ctx)
	m.log.WithField("theme", t).Info("Module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.log.Info("Module stopped")
	return nil
}
