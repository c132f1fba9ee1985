package audio

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/playback"
)

// Monitor watches logind on the system bus for PrepareForSleep and
// forwards the transitions as playback interruptions. Waking up also
// counts as the audio route coming back, so a session paused by an
// unplugged device resumes after suspend.
type Monitor struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  bool
}

// NewMonitor connects to the system bus and subscribes to the logind
// sleep signal. The monitor is idle until Start is called.
func NewMonitor() (*Monitor, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchInterface(logindInterface),
		dbus.WithMatchMember("PrepareForSleep"),
		dbus.WithMatchObjectPath(logindPath),
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("subscribe to logind: %w", err)
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)

	return &Monitor{
		conn:    conn,
		signals: signals,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// Start begins forwarding events to the handler.
func (m *Monitor) Start(handler Handler) {
	m.started = true
	go m.watch(handler)
}

func (m *Monitor) watch(handler Handler) {
	defer close(m.done)

	for {
		select {
		case <-m.stop:
			return
		case sig, ok := <-m.signals:
			if !ok {
				return
			}

			m.dispatch(handler, sig)
		}
	}
}

func (m *Monitor) dispatch(handler Handler, sig *dbus.Signal) {
	if sig == nil || sig.Name != prepareForSleep || len(sig.Body) == 0 {
		return
	}

	sleeping, ok := sig.Body[0].(bool)
	if !ok {
		return
	}

	if sleeping {
		log.Infof("system preparing for sleep")
		handler.HandleInterruption(playback.Interruption{Kind: playback.InterruptionBegan})
		return
	}

	log.Infof("system resumed from sleep")
	handler.HandleInterruption(playback.Interruption{Kind: playback.InterruptionEnded})
	handler.HandleRouteChange(playback.RouteDeviceAvailable)
}

// Stop unsubscribes and waits for the forwarding goroutine to exit.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
		m.conn.RemoveSignal(m.signals)
		_ = m.conn.Close()

		if m.started {
			<-m.done
		}
	})
}
