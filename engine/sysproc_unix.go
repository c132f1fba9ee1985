//go:build !windows

package engine

import (
	"os"
	"os/exec"
	"syscall"
)

// detach puts the player into its own process group so terminal signals
// aimed at the CLI never reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killTree forcefully ends the player together with anything it spawned.
func killTree(p *os.Process) error {
	// Negative pid addresses the whole process group.
	_ = syscall.Kill(-p.Pid, syscall.SIGKILL)
	return p.Kill()
}
