//go:build !windows

package explorer

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own process group.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// disown reaps the child in the background so it never lingers as a zombie.
func disown(cmd *exec.Cmd) error {
	go cmd.Wait()
	return nil
}
