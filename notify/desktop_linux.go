//go:build linux

package notify

import (
	"context"
	"os/exec"
)

// linuxSender shows notifications via notify-send.
type linuxSender struct {
	available bool
}

func newPlatformSender() sender {
	return &linuxSender{available: toolAvailable("notify-send")}
}

func (s *linuxSender) Send(ctx context.Context, title, message string) error {
	return exec.CommandContext(ctx, "notify-send", "--expire-time=10000", title, message).Run()
}

func (s *linuxSender) Available() bool {
	return s.available
}
