package theme

import (
	"context"
	"encoding/json"
	"strings"

	domain "github.com/example/daily-todos/domain/theme"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// themeAdapter wraps ServiceContainer for type-safe cross-module communication.
type themeAdapter struct {
	container mono.ServiceContainer
}

// NewThemeAdapter creates a new adapter for theme services.
func NewThemeAdapter(container mono.ServiceContainer) ThemePort {
	if container == nil {
		panic("theme adapter requires non-nil ServiceContainer")
	}
	return &themeAdapter{container: container}
}

// GetTheme reads the theme state via the get-theme service.
func (a *themeAdapter) GetTheme(ctx context.Context) (*ThemeResponse, error) {
	var req GetThemeRequest
	var resp ThemeResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-theme",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}
	return &resp, nil
}

// SetTheme changes the preference via the set-theme service.
func (a *themeAdapter) SetTheme(ctx context.Context, theme string) (*ThemeResponse, error) {
	req := SetThemeRequest{Theme: theme}
	var resp ThemeResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"set-theme",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}
	return &resp, nil
}

// SetAppearance pushes the OS appearance via the set-appearance service.
func (a *themeAdapter) SetAppearance(ctx context.Context, appearance string) (*ThemeResponse, error) {
	req := SetAppearanceRequest{Appearance: appearance}
	var resp ThemeResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"set-appearance",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}
	return &resp, nil
}

// mapServiceError restores ErrInvalidTheme from a service call.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), domain.ErrInvalidTheme.Error()) {
		return domain.ErrInvalidTheme
	}
	return err
}
