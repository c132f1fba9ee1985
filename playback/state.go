package playback

import (
	"fmt"
	"time"

	"github.com/samber/mo"

	"github.com/zapp-cli/zapp/media"
)

// Range is a closed time interval within the media timeline.
type Range struct {
	Start time.Duration
	End   time.Duration
}

// FailureKind classifies what pushed a session onto the failure path.
type FailureKind int

const (
	// FailureEngine is a load or decode error reported by the media engine.
	FailureEngine FailureKind = iota

	// FailureTimeout is an initial load that never produced a readiness signal.
	FailureTimeout

	// FailureStall is a buffering stall the engine could not recover from.
	FailureStall
)

func (k FailureKind) String() string {
	switch k {
	case FailureEngine:
		return "engine"
	case FailureTimeout:
		return "timeout"
	case FailureStall:
		return "stall"
	}

	return "unknown"
}

// ErrorContext tells the presentation layer which surface a terminal
// error belongs to, so it can word the message accordingly.
type ErrorContext int

const (
	ContextOnDemand ErrorContext = iota
	ContextLive
)

// Error is the terminal playback error published once the recovery
// budget of a session is exhausted.
type Error struct {
	Context ErrorContext
	Kind    FailureKind
	Cause   error
}

func (e Error) Error() string {
	msg := "video could not be loaded"
	if e.Context == ContextLive {
		msg = "live stream could not be loaded"
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}

	return msg
}

func (e Error) Unwrap() error {
	return e.Cause
}

// State is a snapshot of the published playback state.
type State struct {
	// Source of the active session, nil when none is loaded.
	Source media.Source

	// IsPlaying is the play intent. It stays true through transient
	// rebuffering so playback resumes as soon as the buffer allows.
	IsPlaying bool

	// IsBuffering reports that the engine is not likely to keep up.
	// It defaults to true until the session produces its first signal.
	IsBuffering bool

	// IsLoadingStream is true from load until the forward buffer is
	// either ready or full.
	IsLoadingStream bool

	Position time.Duration
	Duration time.Duration

	// Seekable is the currently seekable range, absent for live
	// streams without a timeshift window.
	Seekable mo.Option[Range]

	Quality            media.Quality
	AvailableQualities []media.Quality

	// Err is the terminal error of the session, absent while the
	// controller still recovers on its own.
	Err mo.Option[Error]

	// SleepRemaining is the countdown of the active sleep timer.
	SleepRemaining mo.Option[time.Duration]
}

func defaultState() State {
	return State{
		IsBuffering: true,
	}
}
