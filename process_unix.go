//go:build !windows

package svg2pdf

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places the command in its own process group so the
// whole tree can be signalled at once on cancellation.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
