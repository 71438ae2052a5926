//go:build unix

package shared

import (
	"os/exec"
	"syscall"
)

// detach puts the child into its own process group so that terminal signals
// aimed at the interactive session do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
