package playback

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/media"
)

// Controller drives a single playback session at a time. It is safe for
// concurrent use; every operation runs on the internal controller
// goroutine and returns after the state transition is applied.
type Controller struct {
	opts Options

	dispatch  chan func()
	closed    chan struct{}
	closeOnce sync.Once

	// Everything below is confined to the controller goroutine.
	st      State
	session *session
	gen     uint64

	retries  int
	lastLoad mo.Option[loadRequest]

	timeoutTask  task
	retryTask    task
	debounceTask task

	sleepStop chan struct{}

	resumeAfterRoute        bool
	resumeAfterInterruption bool

	audioActive bool

	subs    map[int]chan State
	nextSub int
}

// NewController starts a controller with no active session.
func NewController(opts Options) *Controller {
	if opts.Engine == nil {
		opts.Engine = engine.Default
	}

	c := &Controller{
		opts:     opts,
		dispatch: make(chan func(), 64),
		closed:   make(chan struct{}),
		st:       defaultState(),
		subs:     make(map[int]chan State),
	}

	go c.loop()
	return c
}

func (c *Controller) loop() {
	for {
		select {
		case f := <-c.dispatch:
			f()
		case <-c.closed:
			return
		}
	}
}

// do runs f on the controller goroutine and waits for it.
func (c *Controller) do(f func()) {
	done := make(chan struct{})

	select {
	case c.dispatch <- func() {
		f()
		close(done)
	}:
	case <-c.closed:
		return
	}

	select {
	case <-done:
	case <-c.closed:
	}
}

// post schedules f on the controller goroutine without waiting. Timer
// and engine callbacks use it; their staleness is checked inside f.
func (c *Controller) post(f func()) {
	select {
	case c.dispatch <- f:
	case <-c.closed:
	}
}

// State returns the current published state.
func (c *Controller) State() State {
	var st State

	c.do(func() {
		st = c.st
	})

	return st
}

// Updates subscribes to state snapshots. The returned cancel func
// unsubscribes and closes the channel. Slow consumers miss intermediate
// snapshots instead of blocking the controller.
func (c *Controller) Updates() (<-chan State, func()) {
	ch := make(chan State, 8)
	var id int

	c.do(func() {
		c.nextSub++
		id = c.nextSub
		c.subs[id] = ch
		ch <- c.st
	})

	cancel := func() {
		c.do(func() {
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}

	return ch, cancel
}

func (c *Controller) publish() {
	st := c.st

	for _, sub := range c.subs {
		select {
		case sub <- st:
		default:
		}
	}

	if c.opts.Transport != nil {
		c.opts.Transport.Update(st)
	}
}

// LoadLiveStream starts a live session for the channel. When no quality
// is given the configured preference is used.
func (c *Controller) LoadLiveStream(channel *media.Channel, quality mo.Option[media.Quality]) error {
	if channel == nil {
		return errors.New("no channel given")
	}

	q, ok := quality.Get()
	if !ok {
		q = preferredLiveQuality()
	}

	req := loadRequest{
		target:    channel.StreamURL,
		source:    media.Live{Channel: channel},
		quality:   q,
		available: media.Qualities(),
	}

	c.do(func() {
		c.loadVideo(req, true)
	})

	return nil
}

// ShowOptions refine a LoadShow call.
type ShowOptions struct {
	// LocalPath plays a downloaded copy instead of streaming.
	LocalPath string

	// Quality overrides the default tier selection, which is the
	// lowest tier the show offers.
	Quality mo.Option[media.Quality]

	// StartAt resumes playback at the given position.
	StartAt time.Duration
}

// LoadShow starts an on-demand session for the show.
func (c *Controller) LoadShow(show *media.Show, opts ShowOptions) error {
	if show == nil {
		return errors.New("no show given")
	}

	var req loadRequest

	if opts.LocalPath != "" {
		req = loadRequest{
			target:  opts.LocalPath,
			source:  media.OnDemand{Show: show, LocalPath: opts.LocalPath},
			startAt: opts.StartAt,
		}
	} else {
		available := show.URLs.Available()
		if len(available) == 0 {
			return fmt.Errorf("show %q has no streams", show.Title)
		}

		q, ok := opts.Quality.Get()
		if !ok {
			q = available[0]
		}

		url, _ := show.URLs.Resolve(q).Get()

		req = loadRequest{
			target:    url,
			source:    media.OnDemand{Show: show},
			quality:   resolvedTier(show.URLs, url, q),
			available: available,
			startAt:   opts.StartAt,
		}
	}

	c.do(func() {
		c.loadVideo(req, true)
	})

	return nil
}

// LoadVideo starts a session for a raw URL. The source variant is
// inferred from the optional show and channel metadata: the channel's
// stream URL means live, a URL or local path of the show means
// on-demand, anything else is a direct source.
func (c *Controller) LoadVideo(url string, show *media.Show, channel *media.Channel, startAt time.Duration) error {
	if url == "" {
		return errors.New("no url given")
	}

	var req loadRequest

	switch {
	case channel != nil && url == channel.StreamURL:
		req = loadRequest{
			target:    url,
			source:    media.Live{Channel: channel},
			quality:   preferredLiveQuality(),
			available: media.Qualities(),
		}
	case show != nil && show.URLs.Contains(url):
		req = loadRequest{
			target:    url,
			source:    media.OnDemand{Show: show},
			quality:   tierOf(show.URLs, url),
			available: show.URLs.Available(),
			startAt:   startAt,
		}
	case show != nil && !isRemote(url):
		req = loadRequest{
			target:  url,
			source:  media.OnDemand{Show: show, LocalPath: url},
			startAt: startAt,
		}
	default:
		direct := media.Direct{URL: url}
		if show != nil {
			direct.Show = mo.Some(show)
		}
		if channel != nil {
			direct.Channel = mo.Some(channel)
		}

		req = loadRequest{
			target:  url,
			source:  direct,
			startAt: startAt,
		}
	}

	c.do(func() {
		c.loadVideo(req, true)
	})

	return nil
}

// ChangeQuality reloads the current source at the given tier, keeping
// the position for on-demand sources. Sessions without alternate
// encodings ignore the call.
func (c *Controller) ChangeQuality(quality media.Quality) error {
	var err error

	c.do(func() {
		switch src := c.st.Source.(type) {
		case media.Live:
			c.loadVideo(loadRequest{
				target:    src.Channel.StreamURL,
				source:    src,
				quality:   quality,
				available: media.Qualities(),
			}, true)
		case media.OnDemand:
			if src.IsLocal() {
				return
			}

			url, ok := src.Show.URLs.Resolve(quality).Get()
			if !ok {
				err = fmt.Errorf("show %q has no streams", src.Show.Title)
				return
			}

			c.loadVideo(loadRequest{
				target:    url,
				source:    src,
				quality:   resolvedTier(src.Show.URLs, url, quality),
				available: src.Show.URLs.Available(),
				startAt:   c.st.Position,
			}, true)
		}
	})

	return err
}

// Play expresses the intent to play and unpauses the engine.
func (c *Controller) Play() {
	c.do(c.play)
}

// Pause pauses the engine and clears the play intent.
func (c *Controller) Pause() {
	c.do(c.pause)
}

// TogglePlayPause flips between Play and Pause based on the intent.
func (c *Controller) TogglePlayPause() {
	c.do(func() {
		if c.st.IsPlaying {
			c.pause()
		} else {
			c.play()
		}
	})
}

// Seek moves the playhead, clamped to the known media duration.
func (c *Controller) Seek(position time.Duration) {
	c.do(func() {
		if c.session == nil {
			return
		}

		if position < 0 {
			position = 0
		}
		if c.st.Duration > 0 && position > c.st.Duration {
			position = c.st.Duration
		}

		c.st.Position = position

		eng := c.session.engine
		go func() {
			_ = eng.Seek(position)
		}()

		c.publish()
	})
}

// RetryLastLoad reissues the last load with a fresh recovery budget.
// On-demand sources resume at the current position.
func (c *Controller) RetryLastLoad() {
	c.do(func() {
		req, ok := c.lastLoad.Get()
		if !ok {
			return
		}

		if _, live := req.source.(media.Live); !live {
			req.startAt = c.st.Position
		}

		c.loadVideo(req, true)
	})
}

// DismissPlaybackError clears a published terminal error.
func (c *Controller) DismissPlaybackError() {
	c.do(func() {
		c.st.Err = mo.None[Error]()
		c.publish()
	})
}

// SavePlaybackPosition persists the resume point of the current
// on-demand session without tearing it down.
func (c *Controller) SavePlaybackPosition() {
	c.do(c.persistPosition)
}

// RouteChange describes a change of the audio output route.
type RouteChange int

const (
	// RouteDeviceLost means the active output device went away.
	RouteDeviceLost RouteChange = iota

	// RouteDeviceAvailable means a (preferred) output device came back.
	RouteDeviceAvailable
)

// HandleRouteChange reacts to an audio route change. Losing the device
// while actually playing pauses with a debounced auto-resume; a device
// coming back while the resume flag is set resumes immediately.
func (c *Controller) HandleRouteChange(change RouteChange) {
	c.do(func() {
		c.handleRouteChange(change)
	})
}

// InterruptionKind distinguishes the two phases of a system interruption.
type InterruptionKind int

const (
	InterruptionBegan InterruptionKind = iota
	InterruptionEnded
)

// Interruption is a system-level audio interruption, e.g. the machine
// preparing for sleep.
type Interruption struct {
	Kind InterruptionKind

	// ShouldResume grants resume permission on the end event even when
	// the controller did not pause itself.
	ShouldResume bool
}

// HandleInterruption pauses when an interruption begins while actually
// playing and resumes on end if the controller paused itself or the
// event grants permission.
func (c *Controller) HandleInterruption(ev Interruption) {
	c.do(func() {
		c.handleInterruption(ev)
	})
}

// Cleanup tears down the active session: it persists the on-demand
// position, cancels pending work, releases the audio output, and resets
// the published state. It is idempotent.
func (c *Controller) Cleanup() {
	c.do(c.cleanup)
}

// Close cleans up and stops the controller goroutine. The controller
// must not be used afterwards.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.do(func() {
			c.cleanup()

			for id, sub := range c.subs {
				delete(c.subs, id)
				close(sub)
			}
		})

		close(c.closed)
	})
}

// loadVideo is the shared load core. It replaces the active session,
// cancels pending timers so the newest call wins, and arms the initial
// load timeout for remote sources.
func (c *Controller) loadVideo(req loadRequest, resetRetry bool) {
	c.timeoutTask.cancel()
	c.retryTask.cancel()
	c.teardownSession(true)

	if resetRetry {
		c.retries = 0
		c.st.Err = mo.None[Error]()
	}

	c.lastLoad = mo.Some(req)

	c.st.Source = req.source
	c.st.Quality = req.quality
	c.st.AvailableQualities = req.available
	c.st.IsPlaying = true
	c.st.IsBuffering = true
	c.st.IsLoadingStream = true
	c.st.Position = req.startAt
	c.st.Duration = 0
	c.st.Seekable = mo.None[Range]()

	if od, ok := req.source.(media.OnDemand); ok {
		c.st.Duration = od.Show.Duration
	}

	c.ensureAudioActive()

	sess := &session{
		gen:    c.gen,
		engine: c.opts.Engine(),
		stop:   make(chan struct{}),
	}
	c.session = sess

	var bitrate int
	if _, live := req.source.(media.Live); live {
		bitrate = req.quality.MaxBitrate()
	}

	opts := engine.LoadOptions{
		Title:            req.source.Title(),
		StartAt:          req.startAt,
		MaxBitrate:       bitrate,
		MinimalBuffer:    true,
		DisableSubtitles: true,
		Local:            req.source.IsLocal(),
	}

	go c.pumpEvents(sess)
	go c.sampleStatus(sess)
	go c.runLoad(sess, req.target, opts)

	if !req.source.IsLocal() {
		gen := sess.gen
		c.timeoutTask.arm(loadTimeout, func() {
			c.post(func() {
				c.handleLoadTimeout(gen)
			})
		})
	}

	log.Infof("loading %q at %s quality", req.source.Title(), req.quality)
	c.publish()
}

// teardownSession releases the per-load resources and bumps the
// generation so late callbacks of the old session are dropped.
func (c *Controller) teardownSession(persist bool) {
	sess := c.session
	if sess == nil {
		return
	}

	if persist {
		c.persistPosition()
	}

	close(sess.stop)

	eng := sess.engine
	go func() {
		_ = eng.Close()
	}()

	c.session = nil
	c.gen++
}

func (c *Controller) handleEngineEvent(gen uint64, ev engine.Event) {
	if gen != c.gen || c.session == nil {
		return
	}

	switch ev.Kind {
	case engine.EventLoaded:
		c.readiness()
	case engine.EventBufferReady:
		c.readiness()
		c.st.IsBuffering = false
		c.st.IsLoadingStream = false

		if c.st.IsPlaying {
			eng := c.session.engine
			go func() {
				_ = eng.Play()
			}()
		}
	case engine.EventBuffering:
		c.st.IsBuffering = true
	case engine.EventBufferFull:
		c.st.IsLoadingStream = false
	case engine.EventStalled:
		c.handleFailure(FailureStall, errors.New("buffering stalled"))
		return
	case engine.EventFailed:
		c.handleFailure(FailureEngine, ev.Err)
		return
	case engine.EventEnded:
		log.Infof("playback of %q ended", c.st.Source.Title())
		c.st.IsPlaying = false
		c.st.IsBuffering = false
		c.st.IsLoadingStream = false
	case engine.EventAudioDevice:
		c.handleAudioDevice(ev.Device)
		return
	}

	c.publish()
}

// readiness handles any signal that the stream came up: the pending
// load timeout is cancelled and the recovery budget refilled.
func (c *Controller) readiness() {
	c.timeoutTask.cancel()

	if c.retries != 0 {
		log.Infof("stream recovered after %d retries", c.retries)
	}
	c.retries = 0
}

func (c *Controller) applyStatus(gen uint64, st engine.Status) {
	if gen != c.gen {
		return
	}

	c.st.Position = st.Position
	if st.Duration > 0 {
		c.st.Duration = st.Duration
	}

	if st.Seekable && st.Duration > 0 {
		c.st.Seekable = mo.Some(Range{End: st.Duration})
	} else {
		c.st.Seekable = mo.None[Range]()
	}

	c.publish()
}

func (c *Controller) handleLoadTimeout(gen uint64) {
	if gen != c.gen {
		return
	}

	c.handleFailure(FailureTimeout, errors.New("stream took too long to load"))
}

// handleFailure is the single failure funnel. Local sources are exempt.
// While budget remains the load is reissued after a growing backoff;
// afterwards a terminal error is published.
func (c *Controller) handleFailure(kind FailureKind, cause error) {
	if c.st.Source == nil || c.st.Source.IsLocal() {
		return
	}
	if c.st.Err.IsPresent() {
		return
	}

	c.timeoutTask.cancel()
	c.retryTask.cancel()

	if c.retries < maxAttempts {
		c.retries++
		c.st.IsLoadingStream = true

		delay := backoffDelay(c.retries)
		gen := c.gen

		log.Warnf("playback failed (%s): %v, retry %d/%d in %s", kind, cause, c.retries, maxAttempts, delay)

		c.retryTask.arm(delay, func() {
			c.post(func() {
				c.performRetry(gen)
			})
		})

		c.publish()
		return
	}

	log.Errorf("playback failed (%s) after %d retries: %v", kind, maxAttempts, cause)

	c.st.IsPlaying = false
	c.st.IsLoadingStream = false

	ctx := ContextOnDemand
	if _, live := c.st.Source.(media.Live); live {
		ctx = ContextLive
	}

	c.st.Err = mo.Some(Error{Context: ctx, Kind: kind, Cause: cause})
	c.publish()
}

// performRetry reissues the last load at the current position unless a
// newer load superseded the failed session in the meantime.
func (c *Controller) performRetry(gen uint64) {
	if gen != c.gen {
		return
	}

	req, ok := c.lastLoad.Get()
	if !ok {
		return
	}

	if _, live := req.source.(media.Live); !live {
		req.startAt = c.st.Position
	}

	c.loadVideo(req, false)
}

func (c *Controller) play() {
	if c.session == nil {
		return
	}

	c.st.IsPlaying = true
	c.ensureAudioActive()

	eng := c.session.engine
	go func() {
		_ = eng.Play()
	}()

	c.publish()
}

func (c *Controller) pause() {
	c.st.IsPlaying = false

	if c.session != nil {
		eng := c.session.engine
		go func() {
			_ = eng.Pause()
		}()
	}

	c.publish()
}

func (c *Controller) handleAudioDevice(device string) {
	if c.session == nil {
		return
	}

	if c.session.audioDevice == "" {
		c.session.audioDevice = device
		return
	}
	if device == c.session.audioDevice {
		return
	}

	log.Infof("audio device changed from %q to %q", c.session.audioDevice, device)
	c.session.audioDevice = device
	c.handleRouteChange(RouteDeviceLost)
}

func (c *Controller) handleRouteChange(change RouteChange) {
	switch change {
	case RouteDeviceLost:
		if !c.engineActuallyPlaying() {
			return
		}

		c.pause()
		c.resumeAfterRoute = true

		c.debounceTask.arm(routeDebounce, func() {
			c.post(c.resumeAfterRouteDebounce)
		})
	case RouteDeviceAvailable:
		if !c.resumeAfterRoute {
			return
		}

		c.debounceTask.cancel()
		c.resumeAfterRoute = false
		c.play()
	}
}

// resumeAfterRouteDebounce fires once the route stopped flapping and
// resumes if nothing consumed the flag in the meantime.
func (c *Controller) resumeAfterRouteDebounce() {
	if !c.resumeAfterRoute {
		return
	}

	c.resumeAfterRoute = false
	c.play()
}

func (c *Controller) handleInterruption(ev Interruption) {
	switch ev.Kind {
	case InterruptionBegan:
		if !c.engineActuallyPlaying() {
			return
		}

		log.Infof("interrupted, pausing playback")
		c.pause()
		c.resumeAfterInterruption = true
	case InterruptionEnded:
		if !c.resumeAfterInterruption && !ev.ShouldResume {
			return
		}

		c.resumeAfterInterruption = false
		c.play()
	}
}

// engineActuallyPlaying asks the engine, not the intent: during an
// interruption the intent may still be true while the engine already
// stopped.
func (c *Controller) engineActuallyPlaying() bool {
	if c.session == nil {
		return false
	}

	st, err := c.session.engine.Status()
	if err != nil {
		return false
	}

	return st.Playing
}

// persistPosition saves the resume point of an on-demand show. Nothing
// is saved when the position is still zero or no duration is known.
func (c *Controller) persistPosition() {
	if c.opts.Store == nil {
		return
	}

	od, ok := c.st.Source.(media.OnDemand)
	if !ok {
		return
	}

	if c.st.Position <= 0 || c.st.Duration <= 0 {
		return
	}

	if err := c.opts.Store.Save(od.Show, c.st.Position, c.st.Duration); err != nil {
		log.Warnf("saving playback position: %v", err)
	}
}

func (c *Controller) cleanup() {
	c.timeoutTask.cancel()
	c.retryTask.cancel()
	c.debounceTask.cancel()
	c.stopSleepTimer()

	c.teardownSession(true)

	c.retries = 0
	c.lastLoad = mo.None[loadRequest]()
	c.resumeAfterRoute = false
	c.resumeAfterInterruption = false

	if c.audioActive && c.opts.Gate != nil {
		if err := c.opts.Gate.Deactivate(); err != nil {
			log.Warnf("releasing audio output: %v", err)
		}
	}
	c.audioActive = false

	c.st = defaultState()
	c.publish()
}

func (c *Controller) ensureAudioActive() {
	if c.audioActive || c.opts.Gate == nil {
		return
	}

	if err := c.opts.Gate.Activate(); err != nil {
		log.Warnf("claiming audio output: %v", err)
		return
	}

	c.audioActive = true
}

func preferredLiveQuality() media.Quality {
	q, err := media.ParseQuality(viper.GetString(key.PlaybackQuality))
	if err != nil {
		return media.QualityMedium
	}

	return q
}

// resolvedTier maps a resolved URL back to the tier it belongs to, so
// the published quality reflects what actually plays after fallback.
func resolvedTier(urls media.VideoURLSet, url string, requested media.Quality) media.Quality {
	for _, q := range urls.Available() {
		if urls.URL(q) == url {
			return q
		}
	}

	return requested
}

func tierOf(urls media.VideoURLSet, url string) media.Quality {
	return resolvedTier(urls, url, media.QualityMedium)
}

func isRemote(url string) bool {
	return strings.Contains(url, "://")
}
