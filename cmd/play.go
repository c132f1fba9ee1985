// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/zapp-cli/zapp/audio"
	"github.com/zapp-cli/zapp/history"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/mpris"
	"github.com/zapp-cli/zapp/playback"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/tui"
	"github.com/zapp-cli/zapp/util"
)

// transportRelay lets the now-playing bridge attach after the controller
// is already running. The bridge needs the controller to serve desktop
// commands, and the controller takes its transport at construction, so
// one of the two has to be wired up late.
type transportRelay struct {
	mu     sync.Mutex
	target playback.Transport
}

func (r *transportRelay) attach(t playback.Transport) {
	r.mu.Lock()
	r.target = t
	r.mu.Unlock()
}

func (r *transportRelay) Update(st playback.State) {
	r.mu.Lock()
	target := r.target
	r.mu.Unlock()

	if target != nil {
		target.Update(st)
	}
}

// startSession stands up a playback controller with every collaborator
// the environment offers and keeps them alive until run returns. The
// now-playing bridge and the power event monitor are best-effort: a
// headless or bus-less system plays fine without them.
func startSession(run func(ctrl *playback.Controller) error) error {
	relay := &transportRelay{}

	gate := audio.NewGate()
	defer util.Ignore(gate.Close)

	ctrl := playback.NewController(playback.Options{
		Store:     history.Store{},
		Transport: relay,
		Gate:      gate,
	})
	defer ctrl.Close()

	if mpris.Enabled() {
		bridge, err := mpris.NewBridge(ctrl)
		if err != nil {
			log.Warnf("now-playing surface unavailable: %s", err)
		} else {
			relay.attach(bridge)
			defer bridge.Close()
		}
	}

	monitor, err := audio.NewMonitor()
	if err != nil {
		log.Warnf("power event monitor unavailable: %s", err)
	} else {
		monitor.Start(ctrl)
		defer monitor.Stop()
	}

	return run(ctrl)
}

// playInteractive runs the terminal interface around a fresh controller.
func playInteractive(options tui.Options) error {
	return startSession(func(ctrl *playback.Controller) error {
		options.Controller = ctrl
		return tui.Run(&options)
	})
}

// playHeadless drives a session without the status view. State
// transitions are printed as plain lines and the process blocks until
// the stream fails terminally or an interrupt arrives.
func playHeadless(autoplay func(*playback.Controller) error) error {
	return startSession(func(ctrl *playback.Controller) error {
		updates, cancel := ctrl.Updates()
		defer cancel()

		if err := autoplay(ctrl); err != nil {
			return err
		}

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)

		var lastLine string
		for {
			select {
			case <-interrupt:
				ctrl.Cleanup()
				return nil
			case st, ok := <-updates:
				if !ok {
					return nil
				}

				if err, failed := st.Err.Get(); failed {
					ctrl.Cleanup()
					return err
				}

				if line := headlessLine(st); line != "" && line != lastLine {
					fmt.Println(line)
					lastLine = line
				}
			}
		}
	})
}

// headlessLine renders a state snapshot as a single status line.
// Position samples alone never produce a new line.
func headlessLine(st playback.State) string {
	if st.Source == nil {
		return ""
	}

	switch {
	case st.IsLoadingStream:
		return fmt.Sprintf("%s loading %s", icon.Get(icon.Progress), st.Source.Title())
	case st.IsBuffering:
		return fmt.Sprintf("%s buffering %s", icon.Get(icon.Buffer), st.Source.Title())
	case st.IsPlaying:
		return fmt.Sprintf("%s playing %s", icon.Get(icon.Play), style.Bold(st.Source.Title()))
	default:
		return fmt.Sprintf("%s paused %s", icon.Get(icon.Pause), st.Source.Title())
	}
}
