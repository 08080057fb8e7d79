//go:build windows

package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// windowsSender shows balloon tips via PowerShell.
type windowsSender struct {
	available bool
}

func newPlatformSender() sender {
	return &windowsSender{available: toolAvailable("powershell")}
}

func (s *windowsSender) Send(ctx context.Context, title, message string) error {
	script := fmt.Sprintf(`Add-Type -AssemblyName System.Windows.Forms;`+
		`Add-Type -AssemblyName System.Drawing;`+
		`$n = New-Object System.Windows.Forms.NotifyIcon;`+
		`$n.Icon = [System.Drawing.SystemIcons]::Information;`+
		`$n.Visible = $true;`+
		`$n.ShowBalloonTip(10000, '%s', '%s', [System.Windows.Forms.ToolTipIcon]::Info)`,
		escapePowerShell(title), escapePowerShell(message))

	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script).Run()
}

func (s *windowsSender) Available() bool {
	return s.available
}

// escapePowerShell doubles single quotes for PowerShell string literals.
func escapePowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
