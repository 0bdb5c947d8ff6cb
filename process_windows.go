//go:build windows

package svg2pdf

import "os/exec"

// setProcessGroup is a no-op on Windows; cancellation falls back to the
// tree kill in internal/process, which uses taskkill /T.
func setProcessGroup(cmd *exec.Cmd) {}
