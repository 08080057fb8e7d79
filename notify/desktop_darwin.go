//go:build darwin

package notify

import (
	"context"
	"fmt"
	"os/exec"
)

// darwinSender shows notifications via osascript.
type darwinSender struct {
	available bool
}

func newPlatformSender() sender {
	return &darwinSender{available: toolAvailable("osascript")}
}

func (s *darwinSender) Send(ctx context.Context, title, message string) error {
	script := fmt.Sprintf("display notification %q with title %q", message, title)
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}

func (s *darwinSender) Available() bool {
	return s.available
}
