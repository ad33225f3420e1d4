// Package notify delivers desktop notifications when a phase ends.
// It uses native mechanisms on macOS (osascript) and Linux (notify-send)
// and silently does nothing elsewhere.
package notify

import (
	"pomo/internal/config"
	"pomo/internal/timer"
)

// Title is the notification heading for every phase change.
const Title = "Pomodoro Timer"

// Notifier sends desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound sends a notification with sound.
	SendWithSound(title, message string) error

	// IsSupported returns true if notifications are supported on this platform.
	IsSupported() bool
}

type noopNotifier struct{}

func (noopNotifier) Send(title, message string) error          { return nil }
func (noopNotifier) SendWithSound(title, message string) error { return nil }
func (noopNotifier) IsSupported() bool                         { return false }

// New creates a platform-specific notifier, or a no-op notifier when the
// platform tool is unavailable.
func New() Notifier {
	n := newPlatformNotifier()
	if n == nil || !n.IsSupported() {
		return noopNotifier{}
	}
	return n
}

// Sink turns timer transition events into notifications.
type Sink struct {
	notifier Notifier
	enabled  bool
	sound    bool
}

// NewSink wraps n with the user's notification preferences.
func NewSink(n Notifier, cfg config.NotificationConfig) *Sink {
	if n == nil {
		n = noopNotifier{}
	}
	return &Sink{notifier: n, enabled: cfg.Enabled, sound: cfg.Sound}
}

// PhaseCompleted announces that ev.Completed ran out. Callers treat the
// error as informational; a failed notification never affects the timer.
func (s *Sink) PhaseCompleted(ev timer.Event) error {
	if !s.enabled {
		return nil
	}
	if s.sound {
		return s.notifier.SendWithSound(Title, ev.Message())
	}
	return s.notifier.Send(Title, ev.Message())
}
