package theme

import (
	"context"

	domain "github.com/example/daily-todos/domain/theme"
)

// GetThemeRequest is the request for reading the theme state.
type GetThemeRequest struct{}

// SetThemeRequest is the request for changing the preference.
type SetThemeRequest struct {
	Theme string `json:"theme"`
}

// SetAppearanceRequest is the request for pushing the OS appearance.
type SetAppearanceRequest struct {
	Appearance string `json:"appearance"`
}

// ThemeResponse describes the resolved theme state.
type ThemeResponse struct {
	Theme      string         `json:"theme"`
	Appearance string         `json:"appearance"`
	IsDark     bool           `json:"is_dark"`
	Palette    domain.Palette `json:"palette"`
}

// ThemePort defines the theme operations driving adapters use.
type ThemePort interface {
	GetTheme(ctx context.Context) (*ThemeResponse, error)
	SetTheme(ctx context.Context, theme string) (*ThemeResponse, error)
	SetAppearance(ctx context.Context, appearance string) (*ThemeResponse, error)
}
