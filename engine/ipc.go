package engine

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"
)

// request is the JSON line sent to the engine's IPC socket.
type request struct {
	Command []any `json:"command"`
}

// response is the JSON line the engine answers with. Lines carrying an
// event name belong to the notification stream and are skipped here.
type response struct {
	Data  any    `json:"data"`
	Error string `json:"error"`
	Event string `json:"event"`
}

const (
	ipcAttempts    = 3
	ipcRetryDelay  = 100 * time.Millisecond
	ipcReadTimeout = time.Second
)

// command issues one JSON-IPC command, retrying transient socket
// failures. The engine mutex serializes concurrent callers.
func (m *MPV) command(args ...any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error

	for attempt := 0; attempt < ipcAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(ipcRetryDelay)
		}

		result, err := roundTrip(m.socketPath, args)
		if err == nil {
			return result, nil
		}

		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", ipcAttempts, lastErr)
}

// roundTrip performs a single command on a short-lived connection.
func roundTrip(socketPath string, args []any) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(ipcReadTimeout)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	// Encode appends the newline the protocol delimits messages with.
	if err := json.NewEncoder(conn).Encode(request{Command: args}); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var resp response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}

		if resp.Event != "" {
			continue
		}

		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("engine error: %s", resp.Error)
		}

		return resp.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	return nil, errors.New("connection closed before reply")
}
