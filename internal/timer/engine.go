package timer

// Loader reads a previously persisted session. ok is false when there is
// nothing usable on disk.
type Loader interface {
	Load() (s State, ok bool)
}

// LoadOrInit restores the persisted session, or starts a fresh one at now.
//
// A restored running session is charged for the time that passed while the
// process was not running, crossing as many phase boundaries as needed.
// The boundaries crossed are returned in order.
func LoadOrInit(l Loader, now int64) (State, []Event) {
	s, ok := l.Load()
	if !ok || s.Validate() != nil {
		return New(now), nil
	}
	return Tick(s, now)
}

// Tick reconciles s against the clock reading now.
//
// A paused state is returned unchanged. Otherwise the seconds since
// LastUpdate are subtracted; every time the countdown reaches zero the phase
// flips and the overflow carries into the next phase.
func Tick(s State, now int64) (State, []Event) {
	if s.Paused {
		return s, nil
	}

	delta := max(now-s.LastUpdate, 0)
	boundary := s.LastUpdate + s.Remaining
	s.Remaining -= delta

	var events []Event
	for s.Remaining <= 0 {
		events = append(events, Event{Completed: s.Phase, At: boundary})
		s.Phase = s.Phase.Next()
		s.Remaining += s.Phase.Duration()
		boundary += s.Phase.Duration()
	}

	s.LastUpdate = now
	return s, events
}

// Pause stops the countdown. Callers should Tick first so the time up to
// the pause is charged.
func Pause(s State) State {
	s.Paused = true
	return s
}

// Resume restarts a paused countdown without charging the paused interval.
// A running state is returned unchanged.
func Resume(s State, now int64) State {
	if !s.Paused {
		return s
	}
	s.Paused = false
	s.LastUpdate = now
	return s
}

// Toggle pauses a running state and resumes a paused one.
func Toggle(s State, now int64) State {
	if s.Paused {
		return Resume(s, now)
	}
	return Pause(s)
}
