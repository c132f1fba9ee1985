package playback

import (
	"sync"
	"time"

	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/media"
)

// fastTimers compresses the controller timing so tests finish in
// milliseconds. The returned func restores the defaults.
func fastTimers() func() {
	origTimeout := loadTimeout
	origSample := sampleEvery
	origDebounce := routeDebounce
	origSleepTick := sleepTickEvery
	origBackoff := backoffUnit

	loadTimeout = 60 * time.Millisecond
	sampleEvery = 5 * time.Millisecond
	routeDebounce = 20 * time.Millisecond
	sleepTickEvery = 10 * time.Millisecond
	backoffUnit = 10 * time.Millisecond

	return func() {
		loadTimeout = origTimeout
		sampleEvery = origSample
		routeDebounce = origDebounce
		sleepTickEvery = origSleepTick
		backoffUnit = origBackoff
	}
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}

		time.Sleep(2 * time.Millisecond)
	}

	return cond()
}

type fakeLoad struct {
	target string
	opts   engine.LoadOptions
}

// fakeEngine is a scripted engine.Engine. Tests emit events on it and
// inspect the commands the controller issued.
type fakeEngine struct {
	mu     sync.Mutex
	events chan engine.Event
	closed bool

	loads  []fakeLoad
	plays  int
	pauses int
	seeks  []time.Duration
	status engine.Status
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{events: make(chan engine.Event, 16)}
}

func (f *fakeEngine) Load(target string, opts engine.LoadOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.loads = append(f.loads, fakeLoad{target: target, opts: opts})
	return nil
}

func (f *fakeEngine) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.plays++
	f.status.Playing = true
	f.status.Paused = false
	return nil
}

func (f *fakeEngine) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pauses++
	f.status.Playing = false
	f.status.Paused = true
	return nil
}

func (f *fakeEngine) Seek(position time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seeks = append(f.seeks, position)
	f.status.Position = position
	return nil
}

func (f *fakeEngine) Status() (engine.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.status, nil
}

func (f *fakeEngine) Events() <-chan engine.Event {
	return f.events
}

func (f *fakeEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		f.closed = true
		close(f.events)
	}

	return nil
}

func (f *fakeEngine) emit(ev engine.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		f.events <- ev
	}
}

func (f *fakeEngine) setStatus(st engine.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.status = st
}

func (f *fakeEngine) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.loads)
}

func (f *fakeEngine) lastLoad() fakeLoad {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.loads[len(f.loads)-1]
}

func (f *fakeEngine) playCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.plays
}

func (f *fakeEngine) pauseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.pauses
}

func (f *fakeEngine) seekCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.seeks)
}

func (f *fakeEngine) lastSeek() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.seeks[len(f.seeks)-1]
}

func (f *fakeEngine) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

// engineRig hands out fake engines and remembers them in creation order.
type engineRig struct {
	mu      sync.Mutex
	engines []*fakeEngine
}

func (r *engineRig) factory() engine.Engine {
	r.mu.Lock()
	defer r.mu.Unlock()

	eng := newFakeEngine()
	r.engines = append(r.engines, eng)
	return eng
}

func (r *engineRig) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.engines)
}

func (r *engineRig) last() *fakeEngine {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.engines[len(r.engines)-1]
}

type savedPosition struct {
	show     *media.Show
	position time.Duration
	duration time.Duration
}

type fakeStore struct {
	mu    sync.Mutex
	saved []savedPosition
}

func (s *fakeStore) Save(show *media.Show, position, duration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saved = append(s.saved, savedPosition{show: show, position: position, duration: duration})
	return nil
}

func (s *fakeStore) records() []savedPosition {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]savedPosition(nil), s.saved...)
}

type fakeGate struct {
	mu          sync.Mutex
	activations int
	releases    int
}

func (g *fakeGate) Activate() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.activations++
	return nil
}

func (g *fakeGate) Deactivate() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.releases++
	return nil
}

func (g *fakeGate) counts() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.activations, g.releases
}

type fakeTransport struct {
	mu      sync.Mutex
	updates int
	last    State
}

func (t *fakeTransport) Update(st State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.updates++
	t.last = st
}

func (t *fakeTransport) snapshot() (int, State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.updates, t.last
}

func testChannel() *media.Channel {
	return &media.Channel{
		ID:        "zdf",
		Name:      "ZDF",
		StreamURL: "https://zdf.example.org/live/master.m3u8",
	}
}

func testShow() *media.Show {
	return &media.Show{
		ID:       "heute-journal-42",
		Title:    "heute journal",
		Topic:    "Nachrichten",
		Duration: 30 * time.Minute,
		URLs: media.VideoURLSet{
			Low:    "https://cdn.example.org/heute/low.mp4",
			Medium: "https://cdn.example.org/heute/medium.mp4",
			High:   "https://cdn.example.org/heute/high.mp4",
		},
	}
}
