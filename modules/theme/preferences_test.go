package theme

import (
	"context"
	"errors"
	"testing"

	domain "github.com/example/daily-todos/domain/theme"
	"github.com/example/daily-todos/events"
	"github.com/example/daily-todos/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingKV wraps a MemoryStore and fails writes when setErr is set.
type failingKV struct {
	*storage.MemoryStore
	getErr error
	setErr error
}

func (f *failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func newKV() *failingKV {
	return &failingKV{MemoryStore: storage.NewMemoryStore()}
}

func errorCount(hook *test.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			n++
		}
	}
	return n
}

func TestPreferences_LoadDefaults(t *testing.T) {
	log, hook := test.NewNullLogger()
	p := NewPreferences(newKV(), log)

	assert.Equal(t, domain.System, p.Load(context.Background()))
	assert.Equal(t, domain.System, p.Theme())
	assert.False(t, p.IsDark())
	assert.Equal(t, 0, errorCount(hook))
}

func TestPreferences_LoadPersisted(t *testing.T) {
	ctx := context.Background()
	kv := newKV()
	require.NoError(t, kv.Set(ctx, StorageKey, []byte("dark")))

	log, _ := test.NewNullLogger()
	p := NewPreferences(kv, log)

	assert.Equal(t, domain.Dark, p.Load(ctx))
	assert.True(t, p.IsDark())
	assert.Equal(t, "dark", p.Palette().Name)
}

func TestPreferences_LoadInvalidFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := newKV()
	require.NoError(t, kv.Set(ctx, StorageKey, []byte("purple")))

	log, hook := test.NewNullLogger()
	p := NewPreferences(kv, log)

	assert.Equal(t, domain.System, p.Load(ctx))
	assert.Equal(t, 1, errorCount(hook))
}

func TestPreferences_LoadReadError(t *testing.T) {
	kv := newKV()
	kv.getErr = errors.New("unavailable")
	log, hook := test.NewNullLogger()
	p := NewPreferences(kv, log)

	assert.Equal(t, domain.System, p.Load(context.Background()))
	assert.Equal(t, 1, errorCount(hook))
}

func TestPreferences_SetTheme(t *testing.T) {
	ctx := context.Background()
	kv := newKV()
	log, _ := test.NewNullLogger()
	p := NewPreferences(kv, log)

	require.NoError(t, p.SetTheme(ctx, domain.Light))
	assert.Equal(t, domain.Light, p.Theme())

	stored, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "light", string(stored))

	err = p.SetTheme(ctx, domain.Theme("sepia"))
	assert.ErrorIs(t, err, domain.ErrInvalidTheme)
	assert.Equal(t, domain.Light, p.Theme())
}

func TestPreferences_SetThemeWriteFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	kv := newKV()
	kv.setErr = errors.New("disk full")
	log, hook := test.NewNullLogger()
	p := NewPreferences(kv, log)

	err := p.SetTheme(ctx, domain.Dark)
	assert.ErrorIs(t, err, kv.setErr)
	assert.Equal(t, domain.Dark, p.Theme())
	assert.Equal(t, 1, errorCount(hook))
}

func TestPreferences_IsDark(t *testing.T) {
	tests := []struct {
		theme      domain.Theme
		appearance domain.Appearance
		want       bool
	}{
		{domain.Light, domain.AppearanceLight, false},
		{domain.Light, domain.AppearanceDark, false},
		{domain.Dark, domain.AppearanceLight, true},
		{domain.Dark, domain.AppearanceDark, true},
		{domain.System, domain.AppearanceLight, false},
		{domain.System, domain.AppearanceDark, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.theme)+"/"+string(tt.appearance), func(t *testing.T) {
			log, _ := test.NewNullLogger()
			p := NewPreferences(newKV(), log)
			require.NoError(t, p.SetTheme(context.Background(), tt.theme))
			p.SetSystemAppearance(tt.appearance)
			assert.Equal(t, tt.want, p.IsDark())
		})
	}
}

func TestModule_Services(t *testing.T) {
	ctx := context.Background()
	log, _ := test.NewNullLogger()
	m := NewModule(newKV(), log)
	require.NoError(t, m.Start(ctx))
	assert.Equal(t, "theme", m.Name())

	resp, err := m.getTheme(ctx, GetThemeRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "system", resp.Theme)
	assert.False(t, resp.IsDark)

	resp, err = m.setAppearance(ctx, SetAppearanceRequest{Appearance: "dark"}, nil)
	require.NoError(t, err)
	assert.True(t, resp.IsDark)
	assert.Equal(t, "dark", resp.Palette.Name)

	resp, err = m.setTheme(ctx, SetThemeRequest{Theme: "light"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "light", resp.Theme)
	assert.False(t, resp.IsDark)

	_, err = m.setTheme(ctx, SetThemeRequest{Theme: "neon"}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTheme)
}

func TestModule_SetAppearanceAppliesOnce(t *testing.T) {
	ctx := context.Background()
	log, _ := test.NewNullLogger()
	m := NewModule(newKV(), log)
	require.NoError(t, m.Start(ctx))

	var _ mono.EventEmitterModule = m
	_, consumes := any(m).(mono.EventConsumerModule)
	assert.False(t, consumes)
	require.Len(t, m.EmitEvents(), 1)
	assert.Equal(t, events.AppearanceChangedV1.ToBase().Name, m.EmitEvents()[0].Name)

	resp, err := m.setAppearance(ctx, SetAppearanceRequest{Appearance: "dark"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "dark", resp.Appearance)
	assert.Equal(t, domain.AppearanceDark, m.Preferences().Appearance())
	assert.True(t, m.Preferences().IsDark())

	resp, err = m.setAppearance(ctx, SetAppearanceRequest{Appearance: "bogus"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "light", resp.Appearance)
	assert.Equal(t, domain.AppearanceLight, m.Preferences().Appearance())
}

func TestMapServiceError(t *testing.T) {
	assert.Nil(t, mapServiceError(nil))
	assert.Equal(t, domain.ErrInvalidTheme, mapServiceError(errors.New(`invalid theme: "neon"`)))
	other := errors.New("timeout")
	assert.Equal(t, other, mapServiceError(other))
}
