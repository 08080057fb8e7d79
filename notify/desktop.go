package notify

import (
	"context"
	"log/slog"
	"os/exec"
	"sync"
)

// sender is the platform-specific backend for desktop popups.
type sender interface {
	// Send shows a native notification popup with the given title and message.
	Send(ctx context.Context, title, message string) error

	// Available reports whether the platform notification tool was found.
	Available() bool
}

// DesktopNotifier delivers events as native OS notification popups.
//
// The platform backend is selected at build time: osascript on macOS,
// notify-send on Linux, a PowerShell balloon tip on Windows. On platforms
// without a backend, or when the tool is not installed, delivery degrades
// to a no-op rather than failing the watch loop; the first skipped
// delivery logs a warning so users learn why popups never appear.
type DesktopNotifier struct {
	sender   sender
	logger   *slog.Logger
	skipOnce sync.Once
}

// NewDesktop creates a [DesktopNotifier] using the current platform's
// notification backend. A nil logger falls back to slog.Default().
func NewDesktop(logger *slog.Logger) *DesktopNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &DesktopNotifier{sender: newPlatformSender(), logger: logger}
}

// Name identifies this channel in logs.
func (d *DesktopNotifier) Name() string {
	return "desktop"
}

// Notify shows the event as a popup. Returns nil when the platform backend
// is unavailable, logging the skip once; returns a [DeliveryError] when
// the backend tool exists but fails.
func (d *DesktopNotifier) Notify(ctx context.Context, event Event) error {
	if !d.sender.Available() {
		d.skipOnce.Do(func() {
			d.logger.Warn("desktop notification tool not found, popups disabled")
		})
		return nil
	}
	if err := d.sender.Send(ctx, event.Title, event.Message); err != nil {
		return &DeliveryError{Notifier: d.Name(), Err: err}
	}
	return nil
}

// toolAvailable checks if a command-line tool is available in PATH.
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// noopSender is the backend for platforms without desktop notifications.
type noopSender struct{}

func (noopSender) Send(_ context.Context, _, _ string) error { return nil }

func (noopSender) Available() bool { return false }
