//go:build windows

package explorer

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// detach starts the child without a console and in its own process group,
// so closing our console does not take the shell down with it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
	}
}

// disown drops our handle to the child; Windows keeps no zombie entry.
func disown(cmd *exec.Cmd) error {
	return cmd.Process.Release()
}
