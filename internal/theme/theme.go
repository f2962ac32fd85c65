// Package theme provides the light and dark palettes of the editor.
package theme

import (
	"image/color"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

// Mode is the user's theme choice.
type Mode string

const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"
)

// ParseMode parses a mode name, falling back to System.
func ParseMode(s string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Light, Dark, System:
		return m
	}
	return System
}

// Next cycles light, dark, system.
func (m Mode) Next() Mode {
	switch m {
	case Light:
		return Dark
	case Dark:
		return System
	}
	return Light
}

// Palette holds the colors the view draws with.
type Palette struct {
	Fg, Bg      color.Color
	Muted       color.Color
	Accent      color.Color
	Border      color.Color
	TabActive   color.Color
	TabEntering color.Color
	Code        color.Color
	Heading     color.Color
	Link        color.Color
	Math        color.Color
	Error       color.Color
	Warning     color.Color
	Success     color.Color
	Info        color.Color
	// Dark is set on palettes meant for a dark background.
	Dark bool
}

var (
	fallbackDark = Palette{
		Fg: lipgloss.Color("#e5e5e5"), Bg: lipgloss.Color("#1a1a2e"),
		Muted: lipgloss.Color("#808090"), Accent: lipgloss.Color("#5c5cff"),
		Border: lipgloss.Color("#2a2a3e"), TabActive: lipgloss.Color("#00cdcd"),
		TabEntering: lipgloss.Color("#00ff00"), Code: lipgloss.Color("#cdcd00"),
		Heading: lipgloss.Color("#ff00ff"), Link: lipgloss.Color("#5c5cff"),
		Math: lipgloss.Color("#00ffff"), Error: lipgloss.Color("#cd0000"),
		Warning: lipgloss.Color("#cdcd00"), Success: lipgloss.Color("#00cd00"),
		Info: lipgloss.Color("#0000ee"), Dark: true,
	}
	fallbackLight = Palette{
		Fg: lipgloss.Color("#1a1a2e"), Bg: lipgloss.Color("#fdf6e3"),
		Muted: lipgloss.Color("#93a1a1"), Accent: lipgloss.Color("#268bd2"),
		Border: lipgloss.Color("#d0d0c0"), TabActive: lipgloss.Color("#2aa198"),
		TabEntering: lipgloss.Color("#859900"), Code: lipgloss.Color("#b58900"),
		Heading: lipgloss.Color("#d33682"), Link: lipgloss.Color("#268bd2"),
		Math: lipgloss.Color("#6c71c4"), Error: lipgloss.Color("#dc322f"),
		Warning: lipgloss.Color("#b58900"), Success: lipgloss.Color("#859900"),
		Info: lipgloss.Color("#268bd2"),
	}
)

// the bubbletint registry is global.
var registryMu sync.Mutex

// FromTint loads the palette of a bubbletint theme. Unknown ids return
// fallback and false.
func FromTint(id string, fallback Palette) (Palette, bool) {
	if id == "" {
		return fallback, false
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	tint.NewDefaultRegistry()
	if !tint.SetTintID(id) {
		return fallback, false
	}
	t := tint.Current()
	if t == nil {
		return fallback, false
	}
	return Palette{
		Fg:          t.Fg,
		Bg:          t.Bg,
		Muted:       t.BrightBlack,
		Accent:      t.Blue,
		Border:      t.BrightBlack,
		TabActive:   t.Cyan,
		TabEntering: t.BrightGreen,
		Code:        t.Yellow,
		Heading:     t.Purple,
		Link:        t.BrightBlue,
		Math:        t.BrightCyan,
		Error:       t.Red,
		Warning:     t.Yellow,
		Success:     t.Green,
		Info:        t.Blue,
		Dark:        fallback.Dark,
	}, true
}

// Theme resolves the active palette from the mode and, for System, the
// terminal background.
type Theme struct {
	mode       Mode
	systemDark bool
	light      Palette
	dark       Palette
}

// New creates a theme from bubbletint ids. System mode assumes a dark
// background until SetSystemDark says otherwise.
func New(mode Mode, lightID, darkID string) *Theme {
	light, _ := FromTint(lightID, fallbackLight)
	dark, _ := FromTint(darkID, fallbackDark)
	return &Theme{mode: mode, systemDark: true, light: light, dark: dark}
}

// Mode returns the chosen mode.
func (t *Theme) Mode() Mode {
	return t.mode
}

// SetMode changes the chosen mode.
func (t *Theme) SetMode(m Mode) {
	t.mode = m
}

// Cycle advances to the next mode and returns it.
func (t *Theme) Cycle() Mode {
	t.mode = t.mode.Next()
	return t.mode
}

// SetSystemDark records whether the terminal background is dark.
func (t *Theme) SetSystemDark(dark bool) {
	t.systemDark = dark
}

// IsDark reports whether the dark palette is in effect.
func (t *Theme) IsDark() bool {
	switch t.mode {
	case Light:
		return false
	case Dark:
		return true
	}
	return t.systemDark
}

// Palette returns the palette in effect.
func (t *Theme) Palette() Palette {
	if t.IsDark() {
		return t.dark
	}
	return t.light
}

// SetTints swaps the light and dark palettes, keeping mode and background.
func (t *Theme) SetTints(lightID, darkID string) {
	t.light, _ = FromTint(lightID, fallbackLight)
	t.dark, _ = FromTint(darkID, fallbackDark)
}
