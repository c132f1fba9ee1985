package playback

import (
	"time"

	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/media"
)

// loadRequest captures everything needed to (re)issue a load. The last
// request is kept so retries and RetryLastLoad can replay it.
type loadRequest struct {
	target    string
	source    media.Source
	quality   media.Quality
	available []media.Quality
	startAt   time.Duration
}

// session bundles the per-load resources: the engine instance, the
// goroutines pumping its events and sampling its status, and the
// generation that fences their callbacks once the session is replaced.
type session struct {
	gen    uint64
	engine engine.Engine
	stop   chan struct{}

	// audioDevice is the last output device reported by the engine,
	// used to detect route changes.
	audioDevice string
}

// pumpEvents forwards engine events onto the controller goroutine until
// the engine closes its event channel.
func (c *Controller) pumpEvents(sess *session) {
	for ev := range sess.engine.Events() {
		ev := ev
		c.post(func() {
			c.handleEngineEvent(sess.gen, ev)
		})
	}
}

// sampleStatus polls the engine for position and duration. The poll runs
// off the controller goroutine; only the application of its result is
// serialized.
func (c *Controller) sampleStatus(sess *session) {
	ticker := time.NewTicker(sampleEvery)
	defer ticker.Stop()

	for {
		select {
		case <-sess.stop:
			return
		case <-ticker.C:
			st, err := sess.engine.Status()
			if err != nil {
				continue
			}

			c.post(func() {
				c.applyStatus(sess.gen, st)
			})
		}
	}
}

// runLoad performs the blocking engine load and expresses the initial
// play intent. Errors re-enter the controller as engine failures.
func (c *Controller) runLoad(sess *session, target string, opts engine.LoadOptions) {
	err := sess.engine.Load(target, opts)
	if err == nil {
		err = sess.engine.Play()
	}

	if err == nil {
		return
	}

	c.post(func() {
		if sess.gen != c.gen {
			return
		}

		c.handleFailure(FailureEngine, err)
	})
}
