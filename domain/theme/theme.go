package theme

import (
	"errors"
	"fmt"
)

// Theme is the user's appearance preference.
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// Default is used when nothing valid has been persisted.
const Default = System

// ErrInvalidTheme is returned for values other than light, dark and system.
var ErrInvalidTheme = errors.New("invalid theme")

// Parse validates a raw preference value.
func Parse(s string) (Theme, error) {
	switch t := Theme(s); t {
	case Light, Dark, System:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Appearance is the operating system's current color scheme.
type Appearance string

const (
	AppearanceLight Appearance = "light"
	AppearanceDark  Appearance = "dark"
)

// ParseAppearance validates an OS appearance value. Anything other than
// "dark" is treated as light, matching a missing OS signal.
func ParseAppearance(s string) Appearance {
	if Appearance(s) == AppearanceDark {
		return AppearanceDark
	}
	return AppearanceLight
}

// IsDark reconciles the preference with the OS appearance.
func IsDark(t Theme, a Appearance) bool {
	return t == Dark || (t == System && a == AppearanceDark)
}

// Palette is the resolved set of accent colors used to render todo state.
type Palette struct {
	Name        string `json:"name"`
	Background  string `json:"background"`
	Label       string `json:"label"`
	Completed   string `json:"completed"`
	Destructive string `json:"destructive"`
	Accent      string `json:"accent"`
}

var (
	lightPalette = Palette{
		Name:        "light",
		Background:  "#FFFFFF",
		Label:       "#000000",
		Completed:   "#34C759",
		Destructive: "#FF3B30",
		Accent:      "#007AFF",
	}
	darkPalette = Palette{
		Name:        "dark",
		Background:  "#000000",
		Label:       "#FFFFFF",
		Completed:   "#30D158",
		Destructive: "#FF453A",
		Accent:      "#0A84FF",
	}
)

// Resolve returns the palette for the effective appearance.
func Resolve(t Theme, a Appearance) Palette {
	if IsDark(t, a) {
		return darkPalette
	}
	return lightPalette
}
