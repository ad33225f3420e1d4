package ui

import (
	"errors"
	"sync"
	"testing"
	"time"

	"pomo/internal/clock"
	"pomo/internal/config"
	"pomo/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// testStart is the clock reading every test begins at.
var testStart = time.Date(2025, 10, 9, 9, 0, 0, 0, time.UTC).Unix()

// setupTest prepares the test environment for deterministic rendering.
// It disables colors so assertions see plain text.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// fakeStore records saved states and fails while err is set.
type fakeStore struct {
	mu    sync.Mutex
	saved []timer.State
	err   error
}

func (f *fakeStore) Save(s timer.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, s)
	return nil
}

func (f *fakeStore) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeStore) last() (timer.State, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saved) == 0 {
		return timer.State{}, false
	}
	return f.saved[len(f.saved)-1], true
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

// fakeNotifier records events and returns err for each.
type fakeNotifier struct {
	mu     sync.Mutex
	events []timer.Event
	err    error
}

func (f *fakeNotifier) PhaseCompleted(ev timer.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

func (f *fakeNotifier) received() []timer.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]timer.Event(nil), f.events...)
}

type testApp struct {
	*App
	store    *fakeStore
	notifier *fakeNotifier
	clock    *clock.Manual
}

// newTestApp builds an App around state with fakes for every dependency.
func newTestApp(t *testing.T, state timer.State) *testApp {
	t.Helper()
	setupTest(t)

	store := &fakeStore{}
	n := &fakeNotifier{}
	clk := clock.NewManual(state.LastUpdate)
	app := NewApp(state, store, createTestStyles(), &AppConfig{Clock: clk, Notifier: n})
	app.nextTick = func() tea.Cmd {
		return func() tea.Msg { return tickMsg{} }
	}
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	return &testApp{App: app, store: store, notifier: n, clock: clk}
}

// run executes cmd and every command it produces, feeding the resulting
// messages back into the app. Ticks are not followed. It reports whether
// the program was asked to quit.
func (ta *testApp) run(cmd tea.Cmd) (quit bool) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			quit = true
		case tickMsg, nil:
		default:
			_, next := ta.Update(msg)
			queue = append(queue, next)
		}
	}
	return quit
}

// tick advances the clock by d and delivers one tick.
func (ta *testApp) tick(d time.Duration) {
	ta.clock.Advance(d)
	_, cmd := ta.Update(tickMsg(time.Unix(ta.clock.Now(), 0)))
	ta.run(cmd)
}

// press delivers a key press.
func (ta *testApp) press(k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := ta.Update(msg)
	return cmd
}

var errDiskFull = errors.New("disk full")
