// Package ui provides terminal user interface components for pomo.
// This file contains tea.Cmd factories for the I/O the control loop
// performs: the tick schedule, persistence and notifications. Each command
// returns a message type defined in messages.go.
package ui

import (
	"sync"
	"time"

	"pomo/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
)

// StateSaver persists the session. *storage.Store implements it.
type StateSaver interface {
	Save(timer.State) error
}

// PhaseNotifier announces a phase change. *notify.Sink implements it.
type PhaseNotifier interface {
	PhaseCompleted(timer.Event) error
}

// tickInterval is the poll cadence of the control loop.
const tickInterval = time.Second

// tickCmd returns a command that sends a tick after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// persister serializes writes from concurrently running save commands and
// drops any write older than the newest one already on disk.
type persister struct {
	store   StateSaver
	mu      sync.Mutex
	written uint64
}

func (p *persister) save(gen uint64, state timer.State) (skipped bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen <= p.written {
		return true, nil
	}
	if err := p.store.Save(state); err != nil {
		return false, err
	}
	p.written = gen
	return false, nil
}

// saveStateCmd returns a command that persists a copy of state.
func saveStateCmd(p *persister, gen uint64, state timer.State) tea.Cmd {
	return func() tea.Msg {
		skipped, err := p.save(gen, state)
		return stateSavedMsg{gen: gen, skipped: skipped, err: err}
	}
}

// notifyCmd returns a command that announces ev. It never blocks the loop.
func notifyCmd(n PhaseNotifier, ev timer.Event) tea.Cmd {
	return func() tea.Msg {
		return notifiedMsg{event: ev, err: n.PhaseCompleted(ev)}
	}
}
