package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	domain "github.com/example/daily-todos/domain/theme"
	"github.com/example/daily-todos/modules/storage"
	"github.com/sirupsen/logrus"
)

// StorageKey is the key the preference is persisted under.
const StorageKey = "app_theme"

// Preferences holds the user's theme choice and the latest OS appearance.
type Preferences struct {
	kv  storage.KVStore
	log logrus.FieldLogger

	mu         sync.RWMutex
	theme      domain.Theme
	appearance domain.Appearance
}

// NewPreferences starts at the default theme with a light OS appearance.
func NewPreferences(kv storage.KVStore, log logrus.FieldLogger) *Preferences {
	return &Preferences{
		kv:         kv,
		log:        log,
		theme:      domain.Default,
		appearance: domain.AppearanceLight,
	}
}

// Load reads the persisted preference. Missing or invalid values fall back
// to the default.
func (p *Preferences) Load(ctx context.Context) domain.Theme {
	loaded := domain.Default

	data, err := p.kv.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		p.log.Debug("No theme stored yet")
	case err != nil:
		p.log.WithError(err).Error("Failed to load theme")
	default:
		t, perr := domain.Parse(strings.TrimSpace(string(data)))
		if perr != nil {
			p.log.WithError(perr).Error("Stored theme is invalid, using default")
		} else {
			loaded = t
		}
	}

	p.mu.Lock()
	p.theme = loaded
	p.mu.Unlock()
	return loaded
}

// Theme returns the current preference.
func (p *Preferences) Theme() domain.Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// Appearance returns the last OS appearance received.
func (p *Preferences) Appearance() domain.Appearance {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.appearance
}

// SetTheme applies t in memory, then persists it. A write failure is logged
// and returned; the in-memory value is kept.
func (p *Preferences) SetTheme(ctx context.Context, t domain.Theme) error {
	if _, err := domain.Parse(string(t)); err != nil {
		return err
	}

	p.mu.Lock()
	p.theme = t
	p.mu.Unlock()

	if err := p.kv.Set(ctx, StorageKey, []byte(t)); err != nil {
		p.log.WithError(err).WithField("theme", t).Error("Failed to save theme")
		return fmt.Errorf("failed to save theme: %w", err)
	}
	p.log.WithField("theme", t).Info("Theme changed")
	return nil
}

// SetSystemAppearance records the OS color scheme.
func (p *Preferences) SetSystemAppearance(a domain.Appearance) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.appearance = a
}

// IsDark reports whether the dark palette is in effect.
func (p *Preferences) IsDark() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return domain.IsDark(p.theme, p.appearance)
}

// Palette returns the palette in effect.
func (p *Preferences) Palette() domain.Palette {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return domain.Resolve(p.theme, p.appearance)
}
