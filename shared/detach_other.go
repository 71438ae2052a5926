//go:build !unix

package shared

import "os/exec"

func detach(cmd *exec.Cmd) {}
