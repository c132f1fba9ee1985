//go:build windows

package engine

import (
	"os"
	"os/exec"
)

// detach is a no-op on Windows; console events do not propagate to the
// player the way POSIX signals do.
func detach(cmd *exec.Cmd) {}

// killTree ends the player process. mpv does not fork helpers on Windows,
// so there is no group to chase.
func killTree(p *os.Process) error {
	return p.Kill()
}
