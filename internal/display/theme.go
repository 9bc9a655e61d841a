package display

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/timetable/internal/slot"
)

// DefaultTheme is used when no theme, or an unknown one, is requested.
const DefaultTheme = "default"

// themesTOML holds the built-in palettes.
const themesTOML = `
[default]
bg       = "#ffffff"
fg       = "#1f2937"
fg_muted = "#6b7280"
accent   = "#4f46e5"
conflict = "#ef4444"

[dark]
bg       = "#1e1e2e"
fg       = "#cdd6f4"
fg_muted = "#7f849c"
accent   = "#89b4fa"
conflict = "#f38ba8"
`

// Theme holds the colors of the week grid renderer.
type Theme struct {
	Name     string `toml:"-"`
	Bg       string `toml:"bg"`
	Fg       string `toml:"fg"`
	FgMuted  string `toml:"fg_muted"`
	Accent   string `toml:"accent"`
	Conflict string `toml:"conflict"`
}

var themes = mustParseThemes(themesTOML)

func mustParseThemes(doc string) map[string]Theme {
	parsed, err := parseThemes(doc)
	if err != nil {
		panic(err)
	}
	return parsed
}

func parseThemes(doc string) (map[string]Theme, error) {
	var parsed map[string]Theme
	if err := toml.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, fmt.Errorf("parsing themes: %w", err)
	}
	for name, t := range parsed {
		t.Name = name
		t.applyDefaults()
		parsed[name] = t
	}
	return parsed, nil
}

func (t *Theme) applyDefaults() {
	if t.Bg == "" {
		t.Bg = "#ffffff"
	}
	if t.Fg == "" {
		t.Fg = "#000000"
	}
	if t.FgMuted == "" {
		t.FgMuted = t.Fg
	}
	if t.Accent == "" {
		t.Accent = t.Fg
	}
	if t.Conflict == "" {
		t.Conflict = ConflictColor
	}
}

// LoadTheme returns a built-in theme by name, falling back to the default.
func LoadTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return themes[DefaultTheme]
}

// AvailableThemes returns the built-in theme names, sorted.
func AvailableThemes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsThemeAvailable reports whether a theme name is built in.
func IsThemeAvailable(name string) bool {
	_, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// CellBackground returns the background for a slot on this theme:
// the light variant on light themes, a darkened one on dark themes.
func (t Theme) CellBackground(s slot.Slot) string {
	c := ColorOf(s)
	if IsLight(t.Bg) {
		return Light(c)
	}
	return Darken(c, 0.55)
}

// SlotStyle returns the lipgloss style used to render a slot entry.
func (t Theme) SlotStyle(s slot.Slot) lipgloss.Style {
	bg := t.CellBackground(s)
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(TextOn(bg, "#ffffff", "#111111"))).
		Padding(0, 1)
	if s.Conflict {
		style = style.Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(t.Conflict))
	}
	return style
}

// HeaderStyle returns the style for day and period headers.
func (t Theme) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent))
}

// MutedStyle returns the style for secondary text.
func (t Theme) MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
}
