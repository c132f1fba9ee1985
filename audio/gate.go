package audio

import (
	"fmt"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/zapp-cli/zapp/constant"
	"github.com/zapp-cli/zapp/log"
)

// Gate holds a logind inhibitor lock while a playback session is
// active, so the machine does not idle into suspend mid-stream. It
// satisfies the controller's audio gate seam.
type Gate struct {
	mu   sync.Mutex
	conn *dbus.Conn
	lock *os.File
}

func NewGate() *Gate {
	return &Gate{}
}

// Activate takes the inhibitor lock. Taking it twice is a no-op.
func (g *Gate) Activate() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lock != nil {
		return nil
	}

	if g.conn == nil {
		conn, err := dbus.ConnectSystemBus()
		if err != nil {
			return fmt.Errorf("connect system bus: %w", err)
		}
		g.conn = conn
	}

	var fd dbus.UnixFD
	obj := g.conn.Object(logindService, logindPath)
	err := obj.Call(logindInterface+".Inhibit", 0, "sleep:idle", constant.Zapp, "media playback", "block").Store(&fd)
	if err != nil {
		return fmt.Errorf("take inhibitor lock: %w", err)
	}

	// logind releases the inhibit once the returned fd is closed
	g.lock = os.NewFile(uintptr(fd), "zapp-inhibitor")

	log.Infof("holding sleep/idle inhibitor")
	return nil
}

// Deactivate releases the lock by closing its file descriptor.
func (g *Gate) Deactivate() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lock == nil {
		return nil
	}

	err := g.lock.Close()
	g.lock = nil

	if err != nil {
		return fmt.Errorf("release inhibitor lock: %w", err)
	}

	log.Infof("released sleep/idle inhibitor")
	return nil
}

// Close releases the lock and the bus connection.
func (g *Gate) Close() error {
	if err := g.Deactivate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.conn != nil {
		err := g.conn.Close()
		g.conn = nil
		return err
	}

	return nil
}
