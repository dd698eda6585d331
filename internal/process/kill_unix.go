//go:build !windows

package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid, taking Chrome's
// renderer and GPU children down with it. Non-positive pids are ignored.
func KillTree(pid int) error {
	if pid <= 0 {
		return nil
	}
	return syscall.Kill(-pid, syscall.SIGKILL)
}
