//go:build !windows

package process

import "syscall"

// KillProcessGroup kills a process and all its children by sending
// SIGKILL to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort cleanup; error ignored as the exec layer reaps the
	// direct child either way
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
