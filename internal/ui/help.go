package ui

import (
	"fmt"
	"strings"

	"pomo/internal/timer"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{
		styles: styles,
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay for the active key bindings.
func (h *HelpOverlay) View(keys KeyMap) string {
	overlayWidth := 56
	if h.width > 0 {
		overlayWidth = min(56, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	row := func(b key.Binding, desc string) string {
		return keyStyle.Render(bindingLabel(b)) + descStyle.Render(desc) + "\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(timer.PhaseWork.Emoji() + " pomo - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Timer"))
	b.WriteString("\n")
	b.WriteString(row(keys.Pause, "Pause the countdown"))
	b.WriteString(row(keys.Resume, "Resume the countdown"))
	b.WriteString(row(keys.Toggle, "Pause or resume"))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("General"))
	b.WriteString("\n")
	b.WriteString(row(keys.Help, "Toggle help"))
	b.WriteString(row(keys.Quit, "Save and quit"))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Session"))
	b.WriteString("\n")
	b.WriteString(descStyle.Render(fmt.Sprintf("Work %d min, break %d min, repeating.",
		timer.WorkSeconds/60, timer.BreakSeconds/60)))
	b.WriteString("\n")
	b.WriteString(descStyle.Render("Progress is saved and resumes where you left off."))
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())

	return RenderCentered(content, h.width, h.height)
}

// bindingLabel lists every key of b, e.g. "q / ctrl+c".
func bindingLabel(b key.Binding) string {
	keys := b.Keys()
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		labels = append(labels, k)
	}
	return strings.Join(labels, " / ")
}

// RenderCentered centers content in the terminal
func RenderCentered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
