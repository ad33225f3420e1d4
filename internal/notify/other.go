//go:build !darwin && !linux

package notify

// Unsupported platforms get the no-op notifier.
func newPlatformNotifier() Notifier {
	return noopNotifier{}
}
