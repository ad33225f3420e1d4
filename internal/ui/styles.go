package ui

import (
	"pomo/internal/config"
	"pomo/internal/timer"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	// Component styles
	TitleStyle      lipgloss.Style
	DateStyle       lipgloss.Style
	PaneStyle       lipgloss.Style
	PaneTitleStyle  lipgloss.Style
	WorkClockStyle  lipgloss.Style
	BreakClockStyle lipgloss.Style
	PausedStyle     lipgloss.Style
	HintStyle       lipgloss.Style
	CounterStyle    lipgloss.Style
	HelpStyle       lipgloss.Style
	HelpKeyStyle    lipgloss.Style
	StatusStyle     lipgloss.Style
	ErrorStyle      lipgloss.Style
	StatLabelStyle  lipgloss.Style
}

// NewStyles creates a new Styles instance from the given config.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme creates a new Styles instance from a ThemeConfig.
// If a theme color is empty, it uses the appropriate default.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#E4572E")
	s.ColorAccent = colorOrDefault(theme.Accent, "#10B981")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")
	s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")

	// Fixed semantic colors
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	s.initComponentStyles()
	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorText).
		Background(s.ColorPrimary).
		Padding(0, 1)

	s.DateStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.ColorPrimary).
		Padding(0, 2)

	s.PaneTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	s.WorkClockStyle = lipgloss.NewStyle().
		Foreground(s.ColorPrimary).
		Bold(true)

	s.BreakClockStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.PausedStyle = lipgloss.NewStyle().
		Foreground(s.ColorWarning).
		Bold(true)

	s.HintStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.CounterStyle = lipgloss.NewStyle().
		Foreground(s.ColorText).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Bold(true)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.ColorAccent).
		Italic(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.ColorDanger).
		Bold(true)

	s.StatLabelStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)
}

// ClockStyle returns the countdown style for phase.
func (s *Styles) ClockStyle(phase timer.Phase) lipgloss.Style {
	if phase == timer.PhaseBreak {
		return s.BreakClockStyle
	}
	return s.WorkClockStyle
}

// PhaseColor returns the theme color associated with phase.
func (s *Styles) PhaseColor(phase timer.Phase) lipgloss.Color {
	if phase == timer.PhaseBreak {
		return s.ColorAccent
	}
	return s.ColorPrimary
}
