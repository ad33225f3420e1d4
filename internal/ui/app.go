// Package ui provides terminal user interface components for pomo.
// This file contains the main App model which owns the session state,
// drives the countdown from a one-second tick and routes key presses using
// the Bubble Tea architecture.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pomo/internal/clock"
	"pomo/internal/config"
	"pomo/internal/timer"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// Status line lifetimes, in seconds.
const (
	statusTTL      = 5
	statusErrorTTL = 8
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys     *config.KeysConfig
	Clock    clock.Clock
	Notifier PhaseNotifier
}

// App is the main application model. It is the only writer of the session
// state; persistence and notifications run as commands on copies.
type App struct {
	state    timer.State
	saver    *persister
	gen      uint64
	notifier PhaseNotifier
	clock    clock.Clock

	styles      *Styles
	timerPane   *TimerPane
	helpOverlay *HelpOverlay
	help        help.Model
	showHelp    bool
	width       int
	height      int

	// Work phases finished while this process was running.
	completed int

	status      string
	statusErr   bool
	statusUntil int64
	saveFailing bool
	quitting    bool

	nextTick func() tea.Cmd
	pending  tea.Cmd

	// Key bindings
	keys     KeyMap
	helpKeys HelpKeyMap
}

type nopNotifier struct{}

func (nopNotifier) PhaseCompleted(timer.Event) error { return nil }

// NewApp creates a new application around an already reconciled state.
func NewApp(state timer.State, store StateSaver, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System
	}
	if cfg.Notifier == nil {
		cfg.Notifier = nopNotifier{}
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.ShortSeparator = styles.HelpStyle

	keys := NewKeyMap(cfg.Keys)
	keys.SetPaused(state.Paused)

	return &App{
		state:       state,
		saver:       &persister{store: store},
		notifier:    cfg.Notifier,
		clock:       cfg.Clock,
		styles:      styles,
		timerPane:   NewTimerPane(styles),
		helpOverlay: NewHelpOverlay(styles),
		help:        h,
		keys:        keys,
		helpKeys:    DefaultHelpKeyMap(),
		nextTick:    tickCmd,
	}
}

// State returns the current session state.
func (a *App) State() timer.State {
	return a.state
}

// Completed returns the number of work phases finished since launch.
func (a *App) Completed() int {
	return a.completed
}

// NoteResume reports phase changes that happened while pomo was not
// running. They are summarised in one log line and in the status line, and
// only the most recent one is announced, once the program starts.
func (a *App) NoteResume(events []timer.Event) {
	if len(events) == 0 {
		return
	}
	first, last := events[0], events[len(events)-1]
	log.Info().
		Int("count", len(events)).
		Time("first", time.Unix(first.At, 0)).
		Time("last", time.Unix(last.At, 0)).
		Str("last_phase", last.Completed.String()).
		Msg("phases completed while away")

	a.pending = notifyCmd(a.notifier, last)

	noun := "phase"
	if len(events) > 1 {
		noun = "phases"
	}
	a.SetStatus(fmt.Sprintf("Welcome back: %d %s finished while away, now %s",
		len(events), noun, a.state.Phase), false)
}

// Init starts the tick loop, writes the reconciled state back and sends
// the notification queued by NoteResume.
func (a *App) Init() tea.Cmd {
	cmd := a.pending
	a.pending = nil
	return tea.Batch(a.nextTick(), a.persist(), cmd)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		cmd := a.step(nil)
		a.expireStatus()
		return a, tea.Batch(cmd, a.nextTick())

	case stateSavedMsg:
		if msg.err != nil {
			a.saveFailing = true
			log.Warn().Err(msg.err).Uint64("gen", msg.gen).Msg("save session")
			a.SetStatus("Could not save session: "+msg.err.Error(), true)
			return a, nil
		}
		if a.saveFailing && !msg.skipped {
			a.saveFailing = false
			a.SetStatus("Session saved", false)
		}
		return a, nil

	case notifiedMsg:
		if msg.err != nil {
			log.Debug().Err(msg.err).Str("phase", msg.event.Completed.String()).Msg("notify")
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.timerPane.SetWidth(msg.Width)
		a.helpOverlay.SetSize(msg.Width, msg.Height)
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		cmd := a.step(nil)
		a.quitting = true
		return a, tea.Batch(cmd, tea.Quit)
	}

	// Help overlay takes priority
	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.Pause):
		return a, a.step(func(s timer.State, _ int64) timer.State {
			return timer.Pause(s)
		})

	case key.Matches(msg, a.keys.Resume):
		return a, a.step(timer.Resume)

	case key.Matches(msg, a.keys.Toggle):
		return a, a.step(timer.Toggle)
	}

	return a, nil
}

// step reconciles the state with the clock, applies op (if any) and
// schedules the resulting saves and notifications.
func (a *App) step(op func(timer.State, int64) timer.State) tea.Cmd {
	now := a.clock.Now()
	prev := a.state

	next, events := timer.Tick(prev, now)
	if op != nil {
		next = op(next, now)
	}
	a.state = next
	a.keys.SetPaused(next.Paused)

	var cmds []tea.Cmd
	for _, ev := range events {
		if ev.Completed == timer.PhaseWork {
			a.completed++
		}
		log.Info().
			Str("phase", ev.Completed.String()).
			Time("at", time.Unix(ev.At, 0)).
			Msg("phase completed")
		cmds = append(cmds, notifyCmd(a.notifier, ev))
	}
	if next != prev || a.saveFailing {
		cmds = append(cmds, a.persist())
	}
	return tea.Batch(cmds...)
}

func (a *App) persist() tea.Cmd {
	a.gen++
	return saveStateCmd(a.saver, a.gen, a.state)
}

func (a *App) expireStatus() {
	if a.status != "" && a.statusUntil != 0 && a.clock.Now() >= a.statusUntil {
		a.status = ""
		a.statusErr = false
		a.statusUntil = 0
	}
}

// Finalize reconciles the state one last time and saves it synchronously.
// It is safe to call after the program has exited.
func (a *App) Finalize() (timer.State, error) {
	next, events := timer.Tick(a.state, a.clock.Now())
	a.state = next
	for _, ev := range events {
		if ev.Completed == timer.PhaseWork {
			a.completed++
		}
		if err := a.notifier.PhaseCompleted(ev); err != nil {
			log.Debug().Err(err).Str("phase", ev.Completed.String()).Msg("notify")
		}
	}

	a.gen++
	if _, err := a.saver.save(a.gen, a.state); err != nil {
		return a.state, fmt.Errorf("final save: %w", err)
	}
	log.Debug().
		Str("phase", a.state.Phase.String()).
		Int64("remaining", a.state.Remaining).
		Bool("paused", a.state.Paused).
		Msg("session saved on exit")
	return a.state, nil
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	// Show help overlay if active
	if a.showHelp {
		return a.helpOverlay.View(a.keys)
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n\n")

	pane := a.timerPane.View(a.state, a.keys)
	if a.width > 0 {
		pane = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, pane)
	}
	b.WriteString(pane)
	b.WriteString("\n\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

// renderGoodbye shows the exit message with a session summary.
func (a *App) renderGoodbye() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	state := "running"
	if a.state.Paused {
		state = "paused"
	}
	fmt.Fprintf(&b, "  %s %s %s left (%s)\n", a.state.Phase.Emoji(), a.state.Phase, a.state.Clock(), state)
	if a.completed > 0 {
		fmt.Fprintf(&b, "  Pomodoros completed: %d\n", a.completed)
	}
	b.WriteString("\n")

	return b.String()
}

// renderTitleBar creates the top title bar with the pomodoro count and date.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" pomo ")

	counter := a.styles.StatLabelStyle.Render("Completed: ") +
		a.styles.CounterStyle.Render(fmt.Sprintf("%d", a.completed))

	now := time.Unix(a.clock.Now(), 0)
	date := a.styles.DateStyle.Render(now.Format("Mon Jan 2 · 15:04"))

	usedWidth := lipgloss.Width(title) + lipgloss.Width(counter) + lipgloss.Width(date) + 2
	spacerWidth := max(a.width-usedWidth-2, 2)

	return title + "  " + counter + strings.Repeat(" ", spacerWidth) + date
}

// renderHelpBar shows the status line if set, otherwise key hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}
	return a.help.View(a.keys)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := int64(statusTTL)
	if isErr {
		ttl = statusErrorTTL
	}
	a.statusUntil = a.clock.Now() + ttl
}

// Run runs app full screen until the user quits or the process is
// interrupted, then saves the final state.
func Run(app *App) (timer.State, error) {
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	if errors.Is(err, tea.ErrInterrupted) || errors.Is(err, tea.ErrProgramKilled) {
		log.Info().Err(err).Msg("timer interrupted")
		err = nil
	}

	state, saveErr := app.Finalize()
	return state, errors.Join(err, saveErr)
}
