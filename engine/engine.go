// Package engine defines a unified abstraction layer for media playback engines.
// The architecture supports multiple backends, with the primary implementation targeting 'mpv' via its JSON-IPC interface.
package engine

import "time"

// LoadOptions carries the per-session tuning applied when a media target is loaded.
type LoadOptions struct {
	// Title is forced onto the engine window and display surfaces.
	Title string

	// StartAt is the initial playback position; zero starts from the beginning.
	StartAt time.Duration

	// MaxBitrate caps the variant selection of adaptive streams, in bits per
	// second. Zero leaves the selection unrestricted.
	MaxBitrate int

	// MinimalBuffer keeps the forward buffer small, favoring latency over
	// resilience.
	MinimalBuffer bool

	// DisableSubtitles suppresses automatic subtitle track selection.
	DisableSubtitles bool

	// Local marks the target as a local file rather than a network stream.
	Local bool
}

// EventKind enumerates the asynchronous signals emitted by an engine session.
type EventKind int

const (
	// EventLoaded fires once the media item is opened and its tracks are known.
	EventLoaded EventKind = iota
	// EventBuffering fires when the cache starves and playback waits for data.
	EventBuffering
	// EventBufferReady fires when the cache holds enough data to sustain playback.
	EventBufferReady
	// EventBufferFull fires when the forward cache reaches its target size.
	EventBufferFull
	// EventStalled fires when playback makes no progress although it was requested.
	EventStalled
	// EventEnded fires when the media item plays to its end.
	EventEnded
	// EventFailed fires when the engine cannot open or continue the media item.
	EventFailed
	// EventAudioDevice fires when the set of audio output devices changes.
	EventAudioDevice
)

// String returns the identifier of the event kind, for logging.
func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventBuffering:
		return "buffering"
	case EventBufferReady:
		return "buffer-ready"
	case EventBufferFull:
		return "buffer-full"
	case EventStalled:
		return "stalled"
	case EventEnded:
		return "ended"
	case EventFailed:
		return "failed"
	case EventAudioDevice:
		return "audio-device"
	default:
		return "unknown"
	}
}

// Event is an asynchronous notification from an engine session.
type Event struct {
	Kind EventKind

	// Err carries the failure cause for EventFailed.
	Err error

	// Device carries the active audio device identifier for EventAudioDevice.
	Device string
}

// Status is a point-in-time snapshot of the engine playback metrics.
type Status struct {
	// Position is the current absolute playback position.
	Position time.Duration

	// Duration is the total media length; zero when unknown (typical for live streams).
	Duration time.Duration

	// Seekable reports whether the media supports seeking.
	Seekable bool

	// Paused reports the engine suspension state.
	Paused bool

	// Playing reports whether media is actually progressing right now,
	// as opposed to the intent to play.
	Playing bool
}

// Engine encapsulates the required capabilities for a media playback backend.
// One instance owns at most one loaded media item; sessions create a fresh
// instance per load and close it on teardown.
type Engine interface {
	// Load opens the media target and prepares playback in a paused state.
	Load(target string, opts LoadOptions) error

	// Play starts or resumes playback.
	Play() error

	// Pause suspends playback.
	Pause() error

	// Seek transitions the playback position to a specific absolute timestamp.
	Seek(position time.Duration) error

	// Status retrieves a snapshot of the current playback metrics.
	Status() (Status, error)

	// Events returns the stream of asynchronous engine notifications.
	// The channel is closed when the engine shuts down.
	Events() <-chan Event

	// Close terminates the playback engine and releases all associated system resources.
	Close() error
}

// Factory creates a fresh engine instance for a new playback session.
type Factory func() Engine
