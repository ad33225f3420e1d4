// Package clock supplies the current wall-clock time as epoch seconds.
//
// The timer engine never reads the system time itself; callers pass a
// reading from a Clock so tests can drive time explicitly.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time in whole seconds since the Unix epoch.
type Clock interface {
	Now() int64
}

// System is the Clock backed by time.Now.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() int64 {
	return time.Now().Unix()
}

// Manual is a Clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now int64
}

// NewManual returns a Manual clock reading now.
func NewManual(now int64) *Manual {
	return &Manual{now: now}
}

// Now returns the current reading.
func (m *Manual) Now() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to now. Moving backwards is allowed.
func (m *Manual) Set(now int64) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Advance moves the clock forward by d, truncated to whole seconds.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += int64(d / time.Second)
	m.mu.Unlock()
}
