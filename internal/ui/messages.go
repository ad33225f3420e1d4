// Package ui provides terminal user interface components for pomo.
// This file defines the messages exchanged between the App model and the
// commands it schedules. Disk and notification I/O never run inside Update.
package ui

import (
	"time"

	"pomo/internal/timer"
)

// tickMsg is sent once per second to drive the countdown.
type tickMsg time.Time

// stateSavedMsg reports the outcome of persisting generation gen.
type stateSavedMsg struct {
	gen     uint64
	skipped bool // a newer generation was already on disk
	err     error
}

// notifiedMsg reports the outcome of a phase-change notification.
type notifiedMsg struct {
	event timer.Event
	err   error
}
