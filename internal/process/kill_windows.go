//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree terminates pid and its children with taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillTree(pid int) error {
	if pid <= 0 {
		return nil
	}
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
