package playback

import (
	"testing"
	"time"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/media"
)

func TestControllerRouteChanges(t *testing.T) {
	Convey("Given a session that is actually playing", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)
		eng := rig.last()
		So(eventually(func() bool { return eng.playCount() == 1 }), ShouldBeTrue)

		Convey("Losing the route pauses and auto-resumes after the debounce", func() {
			c.HandleRouteChange(RouteDeviceLost)

			So(c.State().IsPlaying, ShouldBeFalse)
			So(eventually(func() bool { return eng.pauseCount() == 1 }), ShouldBeTrue)

			So(eventually(func() bool { return c.State().IsPlaying }), ShouldBeTrue)
			So(eventually(func() bool { return eng.playCount() >= 2 }), ShouldBeTrue)
		})

		Convey("A device arriving while flagged resumes before the debounce", func() {
			routeDebounce = 500 * time.Millisecond

			c.HandleRouteChange(RouteDeviceLost)
			So(c.State().IsPlaying, ShouldBeFalse)

			c.HandleRouteChange(RouteDeviceAvailable)
			So(c.State().IsPlaying, ShouldBeTrue)
		})

		Convey("A device arriving without the flag does nothing", func() {
			c.Pause()
			So(eventually(func() bool { return eng.pauseCount() == 1 }), ShouldBeTrue)

			c.HandleRouteChange(RouteDeviceAvailable)
			So(c.State().IsPlaying, ShouldBeFalse)
		})

		Convey("Losing the route while paused is ignored", func() {
			c.Pause()
			So(eventually(func() bool { return eng.pauseCount() == 1 }), ShouldBeTrue)

			c.HandleRouteChange(RouteDeviceLost)

			time.Sleep(3 * routeDebounce)
			So(c.State().IsPlaying, ShouldBeFalse)
			So(eng.pauseCount(), ShouldEqual, 1)
		})

		Convey("An engine output device switch acts as a route loss", func() {
			eng.emit(engine.Event{Kind: engine.EventAudioDevice, Device: "alsa/hdmi"})
			eng.emit(engine.Event{Kind: engine.EventAudioDevice, Device: "alsa/headphones"})

			So(eventually(func() bool { return eng.pauseCount() == 1 }), ShouldBeTrue)
			So(eventually(func() bool { return c.State().IsPlaying }), ShouldBeTrue)
		})
	})
}

func TestControllerInterruptions(t *testing.T) {
	Convey("Given a session that is actually playing", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)
		eng := rig.last()
		So(eventually(func() bool { return eng.playCount() == 1 }), ShouldBeTrue)

		Convey("An interruption pauses, its end resumes", func() {
			c.HandleInterruption(Interruption{Kind: InterruptionBegan})

			So(c.State().IsPlaying, ShouldBeFalse)
			So(eventually(func() bool { return eng.pauseCount() == 1 }), ShouldBeTrue)

			c.HandleInterruption(Interruption{Kind: InterruptionEnded})
			So(c.State().IsPlaying, ShouldBeTrue)
		})

		Convey("An interruption while paused does not set the resume flag", func() {
			c.Pause()
			So(eventually(func() bool { return eng.pauseCount() == 1 }), ShouldBeTrue)

			c.HandleInterruption(Interruption{Kind: InterruptionBegan})
			c.HandleInterruption(Interruption{Kind: InterruptionEnded})

			So(c.State().IsPlaying, ShouldBeFalse)
		})

		Convey("An end event with resume permission resumes regardless", func() {
			c.Pause()
			So(eventually(func() bool { return eng.pauseCount() == 1 }), ShouldBeTrue)

			c.HandleInterruption(Interruption{Kind: InterruptionEnded, ShouldResume: true})
			So(c.State().IsPlaying, ShouldBeTrue)
		})
	})
}

func TestControllerSleepTimer(t *testing.T) {
	Convey("Given a playing session", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)
		eng := rig.last()
		So(eventually(func() bool { return eng.playCount() == 1 }), ShouldBeTrue)

		Convey("The countdown pauses playback when it runs out", func() {
			c.StartSleepTimer(3 * time.Second)
			So(c.State().SleepRemaining.IsPresent(), ShouldBeTrue)

			So(eventually(func() bool { return !c.State().IsPlaying }), ShouldBeTrue)
			So(c.State().SleepRemaining.IsAbsent(), ShouldBeTrue)
			So(eventually(func() bool { return eng.pauseCount() == 1 }), ShouldBeTrue)
		})

		Convey("Cancelling keeps playback running", func() {
			c.StartSleepTimer(time.Hour)
			c.CancelSleepTimer()

			time.Sleep(5 * sleepTickEvery)
			So(c.State().IsPlaying, ShouldBeTrue)
			So(c.State().SleepRemaining.IsAbsent(), ShouldBeTrue)
		})

		Convey("Restarting replaces the countdown", func() {
			c.StartSleepTimer(time.Hour)
			c.StartSleepTimer(2 * time.Hour)

			remaining, ok := c.State().SleepRemaining.Get()
			So(ok, ShouldBeTrue)
			So(remaining, ShouldBeGreaterThan, time.Hour)
		})

		Convey("The countdown survives loading another source", func() {
			c.StartSleepTimer(time.Hour)
			So(c.LoadShow(testShow(), ShowOptions{}), ShouldBeNil)

			So(c.State().SleepRemaining.IsPresent(), ShouldBeTrue)
		})

		Convey("A non-positive duration cancels the countdown", func() {
			c.StartSleepTimer(time.Hour)
			c.StartSleepTimer(0)

			So(c.State().SleepRemaining.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestControllerCleanup(t *testing.T) {
	Convey("Given a controller with a store", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		store := &fakeStore{}
		c := NewController(Options{Engine: rig.factory, Store: store})
		Reset(func() {
			c.Close()
			restore()
		})

		Convey("Cleanup persists the on-demand position and resets the state", func() {
			show := testShow()
			So(c.LoadShow(show, ShowOptions{}), ShouldBeNil)

			eng := rig.last()
			eng.setStatus(engine.Status{Position: 7 * time.Minute, Duration: 29 * time.Minute, Seekable: true, Playing: true})
			So(eventually(func() bool { return c.State().Position == 7*time.Minute }), ShouldBeTrue)

			c.Cleanup()

			records := store.records()
			So(records, ShouldHaveLength, 1)
			So(records[0].show.ID, ShouldEqual, show.ID)
			So(records[0].position, ShouldEqual, 7*time.Minute)
			So(records[0].duration, ShouldEqual, 29*time.Minute)

			So(eventually(eng.isClosed), ShouldBeTrue)

			st := c.State()
			So(st.Source, ShouldBeNil)
			So(st.IsPlaying, ShouldBeFalse)
			So(st.IsBuffering, ShouldBeTrue)

			Convey("A second cleanup is a no-op", func() {
				c.Cleanup()
				So(store.records(), ShouldHaveLength, 1)
			})

			Convey("RetryLastLoad after cleanup does nothing", func() {
				c.RetryLastLoad()
				So(rig.count(), ShouldEqual, 1)
			})
		})

		Convey("Zero progress is not persisted", func() {
			So(c.LoadShow(testShow(), ShowOptions{}), ShouldBeNil)

			c.Cleanup()
			So(store.records(), ShouldBeEmpty)
		})

		Convey("Live sessions are never persisted", func() {
			So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)
			rig.last().setStatus(engine.Status{Position: 2 * time.Minute, Playing: true})

			So(eventually(func() bool { return c.State().Position == 2*time.Minute }), ShouldBeTrue)

			c.Cleanup()
			So(store.records(), ShouldBeEmpty)
		})

		Convey("The position of a declared duration is persisted without a probe", func() {
			show := testShow()
			So(c.LoadShow(show, ShowOptions{StartAt: 9 * time.Minute}), ShouldBeNil)
			rig.last().setStatus(engine.Status{Position: 9 * time.Minute, Playing: true})

			c.Cleanup()

			records := store.records()
			So(records, ShouldHaveLength, 1)
			So(records[0].duration, ShouldEqual, show.Duration)
		})

		Convey("SavePlaybackPosition persists without tearing down", func() {
			So(c.LoadShow(testShow(), ShowOptions{StartAt: 9 * time.Minute}), ShouldBeNil)
			rig.last().setStatus(engine.Status{Position: 9 * time.Minute, Playing: true})

			c.SavePlaybackPosition()

			So(store.records(), ShouldHaveLength, 1)
			So(rig.last().isClosed(), ShouldBeFalse)
			So(c.State().Source, ShouldNotBeNil)
		})

		Convey("Switching sources persists the outgoing position", func() {
			So(c.LoadShow(testShow(), ShowOptions{StartAt: 9 * time.Minute}), ShouldBeNil)
			rig.last().setStatus(engine.Status{Position: 9 * time.Minute, Playing: true})

			So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)

			records := store.records()
			So(records, ShouldHaveLength, 1)
			So(records[0].position, ShouldEqual, 9*time.Minute)
		})
	})
}

func TestControllerAudioGate(t *testing.T) {
	Convey("Given a controller with an audio gate", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		gate := &fakeGate{}
		c := NewController(Options{Engine: rig.factory, Gate: gate})
		Reset(func() {
			c.Close()
			restore()
		})

		Convey("The gate is untouched until the first play intent", func() {
			activations, releases := gate.counts()
			So(activations, ShouldEqual, 0)
			So(releases, ShouldEqual, 0)
		})

		Convey("Loading claims it once for the whole session chain", func() {
			So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)
			c.Pause()
			c.Play()

			activations, _ := gate.counts()
			So(activations, ShouldEqual, 1)

			Convey("Cleanup releases it", func() {
				c.Cleanup()

				activations, releases := gate.counts()
				So(activations, ShouldEqual, 1)
				So(releases, ShouldEqual, 1)

				Convey("The next session claims it again", func() {
					So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)

					activations, _ := gate.counts()
					So(activations, ShouldEqual, 2)
				})
			})
		})
	})
}

func TestControllerTransportMirror(t *testing.T) {
	Convey("Given a controller with a transport", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		transport := &fakeTransport{}
		c := NewController(Options{Engine: rig.factory, Transport: transport})
		Reset(func() {
			c.Close()
			restore()
		})

		Convey("Every published snapshot reaches the transport", func() {
			So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)

			So(eventually(func() bool {
				updates, last := transport.snapshot()
				return updates > 0 && last.IsPlaying
			}), ShouldBeTrue)

			c.Pause()

			_, last := transport.snapshot()
			So(last.IsPlaying, ShouldBeFalse)
		})
	})
}
