// Package timer implements the Pomodoro state machine.
//
// All functions here are pure: they take a State and a clock reading and
// return a new State. Wall-clock accounting flows exclusively through
// State.LastUpdate, so a session restored from disk is reconciled the same
// way a live session is ticked.
package timer

import (
	"errors"
	"fmt"
)

// Phase is the interval currently being counted down.
type Phase string

const (
	PhaseWork  Phase = "Work"
	PhaseBreak Phase = "Break"
)

// Phase lengths in seconds.
const (
	WorkSeconds  = 25 * 60
	BreakSeconds = 5 * 60
)

// ErrInvalidState is returned by State.Validate.
var ErrInvalidState = errors.New("invalid session state")

// Duration returns the full length of p in seconds, or 0 for an unknown phase.
func (p Phase) Duration() int64 {
	switch p {
	case PhaseWork:
		return WorkSeconds
	case PhaseBreak:
		return BreakSeconds
	}
	return 0
}

// Next returns the phase that follows p.
func (p Phase) Next() Phase {
	if p == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	return p == PhaseWork || p == PhaseBreak
}

func (p Phase) String() string {
	return string(p)
}

// Emoji is the phase indicator shown next to the countdown.
func (p Phase) Emoji() string {
	if p == PhaseBreak {
		return "🌴"
	}
	return "🍅"
}

// State is the single persisted Pomodoro session.
type State struct {
	Phase      Phase
	Remaining  int64 // seconds left in Phase
	Paused     bool
	LastUpdate int64 // epoch seconds at which Remaining was accurate
}

// New returns a fresh, running Work session stamped with now.
func New(now int64) State {
	return State{
		Phase:      PhaseWork,
		Remaining:  WorkSeconds,
		Paused:     false,
		LastUpdate: now,
	}
}

// Validate checks the schema invariants of s.
func (s State) Validate() error {
	if !s.Phase.Valid() {
		return fmt.Errorf("%w: unknown phase %q", ErrInvalidState, string(s.Phase))
	}
	if s.Remaining < 0 || s.Remaining > s.Phase.Duration() {
		return fmt.Errorf("%w: remaining %d outside [0, %d]", ErrInvalidState, s.Remaining, s.Phase.Duration())
	}
	if s.LastUpdate < 0 {
		return fmt.Errorf("%w: negative last update %d", ErrInvalidState, s.LastUpdate)
	}
	return nil
}

// Clock formats the remaining time as MM:SS.
func (s State) Clock() string {
	r := max(s.Remaining, 0)
	return fmt.Sprintf("%02d:%02d", r/60, r%60)
}

// Progress is the elapsed fraction of the current phase in [0, 1].
func (s State) Progress() float64 {
	total := s.Phase.Duration()
	if total == 0 {
		return 0
	}
	elapsed := total - s.Remaining
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= total:
		return 1
	}
	return float64(elapsed) / float64(total)
}

// Event reports that a phase ran out.
type Event struct {
	Completed Phase
	At        int64 // epoch second at which the countdown reached zero
}

// Message is the notification text for e.
func (e Event) Message() string {
	if e.Completed == PhaseBreak {
		return "Break time over! Ready for work?"
	}
	return "Work session completed! Time for a break."
}
