//go:build linux

package notify

import (
	"fmt"
	"os/exec"
)

// linuxNotifier shells out to notify-send.
type linuxNotifier struct{}

func newPlatformNotifier() Notifier {
	return linuxNotifier{}
}

func (n linuxNotifier) Send(title, message string) error {
	return n.run(title, message, false)
}

// SendWithSound raises the urgency hint; whether that plays a sound is up
// to the notification daemon.
func (n linuxNotifier) SendWithSound(title, message string) error {
	return n.run(title, message, true)
}

func (linuxNotifier) IsSupported() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (linuxNotifier) run(title, message string, sound bool) error {
	args := []string{"--app-name=pomo"}
	if sound {
		args = append(args, "--urgency=critical")
	}
	args = append(args, title, message)

	if err := exec.Command("notify-send", args...).Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
