// Package playback implements the playback session controller.
//
// The controller owns the lifecycle of a single active playback attempt and
// keeps it alive across unreliable networks, audio route changes, and system
// interruptions. All state mutations happen on one controller goroutine;
// public operations and asynchronous callbacks are funneled onto it, and
// callbacks of replaced sessions are fenced off by a generation counter.
package playback

import (
	"math"
	"time"

	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/media"
)

// maxAttempts is the recovery budget of a retry session. The first failures
// are recovered silently; exhausting the budget publishes a terminal error.
const maxAttempts = 3

// Timing tunables. Variables so tests can compress time.
var (
	// loadTimeout bounds the initial load of a remote session.
	loadTimeout = 8 * time.Second

	// sampleEvery is the cadence of the position/duration sampler.
	sampleEvery = 500 * time.Millisecond

	// routeDebounce absorbs rapid audio route flapping before auto-resume.
	routeDebounce = 150 * time.Millisecond

	// sleepTickEvery is the real-time interval of one sleep timer tick.
	// Each tick accounts for one second of countdown.
	sleepTickEvery = time.Second

	// backoffUnit scales the retry backoff curve.
	backoffUnit = time.Second
)

// backoffDelay returns the delay before the given recovery attempt (1-based):
// 1.5^attempt seconds, capped at four seconds.
func backoffDelay(attempt int) time.Duration {
	d := time.Duration(math.Pow(1.5, float64(attempt)) * float64(backoffUnit))
	if max := 4 * backoffUnit; d > max {
		return max
	}
	return d
}

// PositionStore persists resume points of on-demand shows.
type PositionStore interface {
	Save(show *media.Show, position, duration time.Duration) error
}

// Transport mirrors the published state onto an external now-playing surface.
// Update is called on the controller goroutine and must not block.
type Transport interface {
	Update(st State)
}

// AudioGate claims and releases the platform audio output for the session.
// It is activated lazily on the first play intent and released on Cleanup.
type AudioGate interface {
	Activate() error
	Deactivate() error
}

// Options configures a Controller. Zero fields fall back to defaults:
// the mpv engine factory and no-op collaborators.
type Options struct {
	Engine    engine.Factory
	Store     PositionStore
	Transport Transport
	Gate      AudioGate
}
