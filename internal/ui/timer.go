// Package ui provides terminal user interface components for pomo.
package ui

import (
	"fmt"
	"strings"

	"pomo/internal/timer"

	"github.com/charmbracelet/bubbles/progress"
)

const (
	minPaneWidth = 34
	maxPaneWidth = 60
)

// TimerPane renders the countdown for a session state.
type TimerPane struct {
	styles *Styles
	bar    progress.Model
	width  int
}

// NewTimerPane creates a new timer pane.
func NewTimerPane(styles *Styles) *TimerPane {
	bar := progress.New(
		progress.WithSolidFill(string(styles.ColorPrimary)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(styles.ColorMuted)

	p := &TimerPane{styles: styles, bar: bar}
	p.SetWidth(minPaneWidth)
	return p
}

// SetWidth sets the pane width from the terminal width.
func (p *TimerPane) SetWidth(termWidth int) {
	p.width = min(maxPaneWidth, max(minPaneWidth, termWidth-4))
	// Border (2) + horizontal padding (4).
	p.bar.Width = p.width - 6
}

// View renders the pane for state using keys for the hint line.
func (p *TimerPane) View(state timer.State, keys KeyMap) string {
	var b strings.Builder

	title := fmt.Sprintf("%s %s", state.Phase.Emoji(), strings.ToUpper(state.Phase.String()))
	b.WriteString(p.styles.PaneTitleStyle.Foreground(p.styles.PhaseColor(state.Phase)).Render(title))
	b.WriteString("\n\n")

	b.WriteString(p.styles.ClockStyle(state.Phase).Render(state.Clock()))
	if state.Paused {
		b.WriteString("  " + p.styles.PausedStyle.Render("⏸ paused"))
	}
	b.WriteString("\n")

	p.bar.FullColor = string(p.styles.PhaseColor(state.Phase))
	b.WriteString(p.bar.ViewAs(state.Progress()))
	b.WriteString("\n\n")

	b.WriteString(p.styles.HintStyle.Render(pauseHint(state.Paused, keys)))

	return p.styles.PaneStyle.Width(p.width - 2).Render(b.String())
}

// pauseHint is the one-line instruction under the countdown.
func pauseHint(paused bool, keys KeyMap) string {
	quit := keys.Quit.Help().Key
	if paused {
		return fmt.Sprintf("PAUSED - Press '%s' to resume, '%s' to quit", keys.Resume.Help().Key, quit)
	}
	return fmt.Sprintf("Press '%s' to pause, '%s' to quit", keys.Pause.Help().Key, quit)
}
