//go:build unix

package pipeline

import (
	"os/exec"
	"syscall"
)

// detach starts cmd in a process group of its own, so a terminal
// interrupt reaches the converter but not the running codecs.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
