package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/zapp-cli/zapp/log"
)

// EventCallback receives raw mpv notifications by name.
type EventCallback func(name string, data any)

// observedProperties lists the mpv properties whose changes drive session state.
var observedProperties = []struct {
	id   int
	name string
}{
	{1, "paused-for-cache"},   // cache starvation / recovery
	{2, "demuxer-cache-idle"}, // forward cache filled
	{3, "eof-reached"},        // playback completion
	{4, "audio-device-list"},  // audio output device changes
}

// EventListener watches the engine's notification stream over a
// persistent IPC connection.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback
	stopCh     chan struct{}
	done       chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start registers the property observers and begins reading. The
// observers go over the same persistent connection the read loop uses:
// mpv scopes property observation to the registering client, so a
// throwaway connection would never see the notifications.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	encoder := json.NewEncoder(conn)
	for _, prop := range observedProperties {
		if err := encoder.Encode(request{Command: []any{"observe_property", prop.id, prop.name}}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", prop.name, err)
		}
	}

	el.conn = conn
	el.listening = true

	go el.readLoop()

	log.Infof("player event listener started on %s", el.socketPath)
	return nil
}

// Stop terminates the event listener and waits for the read loop to
// drain, guaranteeing that no callback fires after it returns.
func (el *EventListener) Stop() {
	el.mu.Lock()

	if !el.listening {
		el.mu.Unlock()
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		// Unblocks the pending read.
		el.conn.Close()
	}
	el.listening = false
	el.mu.Unlock()

	<-el.done
}

// readLoop consumes the newline-delimited JSON stream: replies to the
// observe registrations and asynchronous events as properties change.
func (el *EventListener) readLoop() {
	defer close(el.done)
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	scanner := bufio.NewScanner(el.conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		el.processEvent(line)
	}

	if err := scanner.Err(); err != nil {
		select {
		case <-el.stopCh:
		default:
			log.Warnf("event listener read error: %v", err)
		}
	}
}

// processEvent parses and dispatches a single event line. Command
// replies carry no "event" field and are skipped.
func (el *EventListener) processEvent(line string) {
	var event map[string]any
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return
	}

	eventType, ok := event["event"].(string)
	if !ok {
		return
	}

	switch eventType {
	case "property-change":
		name, _ := event["name"].(string)
		if name != "" && el.callback != nil {
			el.callback(name, event["data"])
		}
	default:
		// Lifecycle events such as "file-loaded", "end-file", "shutdown".
		if el.callback != nil {
			el.callback(eventType, event)
		}
	}
}
