package ui

import (
	"testing"

	"pomo/internal/config"
	"pomo/internal/timer"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestPauseHint(t *testing.T) {
	keys := DefaultKeyMap()

	assert.Equal(t, "Press 'p' to pause, 'q' to quit", pauseHint(false, keys))
	assert.Equal(t, "PAUSED - Press 'r' to resume, 'q' to quit", pauseHint(true, keys))
}

func TestPauseHint_CustomKeys(t *testing.T) {
	keys := NewKeyMap(&config.KeysConfig{Pause: "s", Resume: "g", Quit: "x"})

	assert.Equal(t, "Press 's' to pause, 'x' to quit", pauseHint(false, keys))
	assert.Equal(t, "PAUSED - Press 'g' to resume, 'x' to quit", pauseHint(true, keys))
}

func TestTimerPane_SetWidth(t *testing.T) {
	p := NewTimerPane(createTestStyles())

	tests := []struct {
		term int
		want int
	}{
		{0, minPaneWidth},
		{20, minPaneWidth},
		{50, 46},
		{200, maxPaneWidth},
	}
	for _, tt := range tests {
		p.SetWidth(tt.term)
		assert.Equal(t, tt.want, p.width, "term width %d", tt.term)
		assert.Equal(t, tt.want-6, p.bar.Width, "term width %d", tt.term)
	}
}

func TestTimerPane_View(t *testing.T) {
	setupTest(t)
	p := NewTimerPane(createTestStyles())
	p.SetWidth(80)

	view := p.View(timer.State{Phase: timer.PhaseBreak, Remaining: 150, LastUpdate: testStart}, DefaultKeyMap())

	assert.Contains(t, view, "🌴 BREAK")
	assert.Contains(t, view, "02:30")
	assert.Contains(t, view, "Press 'p' to pause")
	assert.Equal(t, maxPaneWidth, lipgloss.Width(view))
}
