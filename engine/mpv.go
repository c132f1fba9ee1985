package engine

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/constant"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond

	// eventQueueSize bounds the notifications waiting for the consumer.
	eventQueueSize = 32

	// stallThreshold is how long the cache may starve before the session is
	// reported as stalled rather than merely buffering.
	stallThreshold = 10 * time.Second
)

// MPV implements the Engine interface using mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	events     chan Event
	stopCh     chan struct{} // closed on shutdown, releases pending emits
	listener   *EventListener
	closeOnce  sync.Once
	mu         sync.Mutex // protects socket writes

	stallMu    sync.Mutex
	stallTimer *time.Timer
}

// NewMPV creates a new mpv engine instance (does not start a process).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
		events: make(chan Event, eventQueueSize),
		stopCh: make(chan struct{}),
	}
}

// Default is the Factory producing mpv-backed engines.
func Default() Engine {
	return NewMPV()
}

// Load spawns an idle mpv process wired to a private IPC socket, attaches the
// property observers, and only then opens the media target, so that no
// readiness event can be missed between process start and observer attach.
func (m *MPV) Load(target string, opts LoadOptions) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	// Generate a random socket path using os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/)
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Zapp, randomBytes))
	}

	args := buildArgs(m.socketPath, opts, viper.GetStringSlice(key.PlayerArgs))

	m.cmd = exec.Command(viper.GetString(key.PlayerPath), args...)

	detach(m.cmd)

	// Disable standard pipes to prevent resource leaks.
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}

	// Background goroutine to reap the process and prevent zombies.
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		// If the socket never became ready, kill the orphaned process.
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
			default:
				log.Warnf("killing player: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("player socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.handleEvent)
	if err := m.listener.Start(); err != nil {
		_ = m.Close()
		return fmt.Errorf("attach observers: %w", err)
	}

	// Surface an unexpected process death as a failure so the session can react.
	go func() {
		select {
		case <-m.exited:
			m.emit(Event{Kind: EventFailed, Err: errors.New("player process exited")})
		case <-m.stopCh:
		}
	}()

	if _, err := m.command("loadfile", safeTarget, "replace"); err != nil {
		return fmt.Errorf("load media: %w", err)
	}

	return nil
}

// buildArgs assembles the mpv command line for a session.
// Only session tuning is passed; rendering options are left to the user's mpv.conf.
func buildArgs(socketPath string, opts LoadOptions, extra []string) []string {
	safeTitle := sanitizeTitle(opts.Title)

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--title=%s", safeTitle), // Some mpv builds only respect --title
		"--force-window=yes",
		"--idle=yes",
		"--pause",
	}

	if opts.StartAt > 0 {
		args = append(args, fmt.Sprintf("--start=%d", int(opts.StartAt.Seconds())))
	}
	if opts.MaxBitrate > 0 {
		args = append(args, fmt.Sprintf("--hls-bitrate=%d", opts.MaxBitrate))
	}
	if opts.MinimalBuffer {
		args = append(args, "--demuxer-readahead-secs=4")
	}
	if opts.DisableSubtitles {
		args = append(args, "--sid=no")
	}
	if !opts.Local {
		args = append(args, fmt.Sprintf("--user-agent=%s", constant.UserAgent))
	}

	return append(args, extra...)
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("player exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// handleEvent translates raw mpv notifications into engine events.
func (m *MPV) handleEvent(name string, data any) {
	switch name {
	case "paused-for-cache":
		starved, ok := data.(bool)
		if !ok {
			return
		}
		if starved {
			m.armStallTimer()
			m.emit(Event{Kind: EventBuffering})
		} else {
			m.cancelStallTimer()
			m.emit(Event{Kind: EventBufferReady})
		}
	case "demuxer-cache-idle":
		if idle, ok := data.(bool); ok && idle {
			m.emit(Event{Kind: EventBufferFull})
		}
	case "eof-reached":
		if reached, ok := data.(bool); ok && reached {
			m.emit(Event{Kind: EventEnded})
		}
	case "audio-device-list":
		m.emit(Event{Kind: EventAudioDevice, Device: m.currentAudioDevice()})
	case "file-loaded":
		m.cancelStallTimer()
		m.emit(Event{Kind: EventLoaded})
	case "playback-restart":
		m.cancelStallTimer()
		m.emit(Event{Kind: EventBufferReady})
	case "end-file":
		fields, ok := data.(map[string]any)
		if !ok {
			return
		}
		reason, _ := fields["reason"].(string)
		if reason == "error" {
			cause, _ := fields["file_error"].(string)
			if cause == "" {
				cause = "unknown error"
			}
			m.emit(Event{Kind: EventFailed, Err: fmt.Errorf("player: %s", cause)})
		}
	case "shutdown":
		m.emit(Event{Kind: EventEnded})
	}
}

// emit queues an event for the consumer, dropping it when the engine shuts down.
func (m *MPV) emit(ev Event) {
	select {
	case m.events <- ev:
	case <-m.stopCh:
	}
}

// armStallTimer schedules a stall notification unless the cache recovers first.
func (m *MPV) armStallTimer() {
	m.stallMu.Lock()
	defer m.stallMu.Unlock()

	if m.stallTimer != nil {
		m.stallTimer.Stop()
	}
	m.stallTimer = time.AfterFunc(stallThreshold, func() {
		m.emit(Event{Kind: EventStalled})
	})
}

// cancelStallTimer stops a pending stall notification, if any.
func (m *MPV) cancelStallTimer() {
	m.stallMu.Lock()
	defer m.stallMu.Unlock()

	if m.stallTimer != nil {
		m.stallTimer.Stop()
		m.stallTimer = nil
	}
}

// Events returns the stream of asynchronous engine notifications.
func (m *MPV) Events() <-chan Event {
	return m.events
}

// Play starts or resumes playback.
func (m *MPV) Play() error {
	return m.set("pause", false)
}

// Pause suspends playback.
func (m *MPV) Pause() error {
	return m.set("pause", true)
}

// Seek moves playback to the given absolute position.
func (m *MPV) Seek(position time.Duration) error {
	_, err := m.command("seek", position.Seconds(), "absolute")
	return err
}

// Status retrieves a snapshot of the current playback metrics.
// Properties that are not yet available (media still opening, live streams
// without a known duration) are reported as zero values rather than errors.
func (m *MPV) Status() (Status, error) {
	if !m.running() {
		return Status{}, errors.New("engine not running")
	}

	var st Status

	if pos, err := m.getFloatProperty("time-pos"); err == nil {
		st.Position = time.Duration(pos * float64(time.Second))
	}
	if dur, err := m.getFloatProperty("duration"); err == nil {
		st.Duration = time.Duration(dur * float64(time.Second))
	}
	if seekable, err := m.getBoolProperty("seekable"); err == nil {
		st.Seekable = seekable
	}

	paused, err := m.getBoolProperty("pause")
	if err != nil {
		return st, fmt.Errorf("query pause state: %w", err)
	}
	st.Paused = paused

	coreIdle, err := m.getBoolProperty("core-idle")
	if err != nil {
		return st, fmt.Errorf("query core state: %w", err)
	}
	st.Playing = !paused && !coreIdle

	return st, nil
}

// running reports whether the mpv process is still alive.
func (m *MPV) running() bool {
	if m.socketPath == "" {
		return false
	}
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// currentAudioDevice queries the identifier of the active audio output.
func (m *MPV) currentAudioDevice() string {
	data, err := m.command("get_property", "audio-device")
	if err != nil {
		return ""
	}
	device, _ := data.(string)
	return device
}

// Close shuts down the mpv process and releases all engine resources.
// It is safe to call multiple times.
func (m *MPV) Close() error {
	m.closeOnce.Do(func() {
		m.cancelStallTimer()
		close(m.stopCh)

		if m.listener != nil {
			m.listener.Stop()
		}

		if m.socketPath != "" {
			// Try a graceful quit via IPC first.
			_, _ = m.command("quit")

			select {
			case <-m.exited:
			case <-time.After(3 * time.Second):
				if m.cmd != nil && m.cmd.Process != nil {
					_ = killTree(m.cmd.Process)
				}
			}

			_ = os.Remove(m.socketPath)
		}

		close(m.events)
	})
	return nil
}

// set assigns an mpv property via IPC.
func (m *MPV) set(property string, value any) error {
	_, err := m.command("set_property", property, value)
	return err
}

// getFloatProperty retrieves a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.command("get_property", name)
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// getBoolProperty retrieves a boolean mpv property via IPC.
func (m *MPV) getBoolProperty(name string) (bool, error) {
	data, err := m.command("get_property", name)
	if err != nil {
		return false, err
	}

	val, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a target is safe to hand to the player process.
// Prevents flag injection through crafted URLs or paths.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	// Reject control characters
	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: URLs must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	// If it contains "://", validate as URL
	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}

// sanitizeTitle cleans up the title for the player command line.
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	// Remove null bytes
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
