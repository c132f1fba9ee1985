package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/media"
)

func TestBackoffDelay(t *testing.T) {
	Convey("The retry backoff grows by half per attempt, capped at four seconds", t, func() {
		So(backoffDelay(1), ShouldEqual, 1500*time.Millisecond)
		So(backoffDelay(2), ShouldEqual, 2250*time.Millisecond)
		So(backoffDelay(3), ShouldEqual, 3375*time.Millisecond)
		So(backoffDelay(4), ShouldEqual, 4*time.Second)
		So(backoffDelay(10), ShouldEqual, 4*time.Second)
	})
}

func TestControllerRecovery(t *testing.T) {
	Convey("Given a live session", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)
		first := rig.last()

		Convey("A transient engine failure reloads after backoff", func() {
			first.emit(engine.Event{Kind: engine.EventFailed, Err: errors.New("demuxer choked")})

			So(eventually(func() bool { return rig.count() == 2 }), ShouldBeTrue)
			So(eventually(first.isClosed), ShouldBeTrue)

			st := c.State()
			So(st.Err.IsAbsent(), ShouldBeTrue)
			So(st.IsLoadingStream, ShouldBeTrue)
		})

		Convey("A buffering stall funnels into the same recovery", func() {
			first.emit(engine.Event{Kind: engine.EventStalled})

			So(eventually(func() bool { return rig.count() == 2 }), ShouldBeTrue)
			So(c.State().Err.IsAbsent(), ShouldBeTrue)
		})

		Convey("Exhausting the budget publishes a terminal live error", func() {
			for i := 0; i < maxAttempts; i++ {
				rig.last().emit(engine.Event{Kind: engine.EventFailed, Err: errors.New("demuxer choked")})
				So(eventually(func() bool { return rig.count() == i+2 }), ShouldBeTrue)
			}

			rig.last().emit(engine.Event{Kind: engine.EventFailed, Err: errors.New("demuxer choked")})
			So(eventually(func() bool { return c.State().Err.IsPresent() }), ShouldBeTrue)

			st := c.State()
			So(st.IsPlaying, ShouldBeFalse)
			So(st.IsLoadingStream, ShouldBeFalse)

			err, _ := st.Err.Get()
			So(err.Context, ShouldEqual, ContextLive)
			So(err.Error(), ShouldContainSubstring, "live stream")
			So(errors.Unwrap(err), ShouldNotBeNil)

			Convey("RetryLastLoad starts over with a fresh budget", func() {
				loads := rig.count()
				c.RetryLastLoad()

				So(rig.count(), ShouldEqual, loads+1)
				So(c.State().Err.IsAbsent(), ShouldBeTrue)
				So(c.State().IsPlaying, ShouldBeTrue)
			})

			Convey("DismissPlaybackError clears the error without reloading", func() {
				loads := rig.count()
				c.DismissPlaybackError()

				So(c.State().Err.IsAbsent(), ShouldBeTrue)
				So(rig.count(), ShouldEqual, loads)
			})
		})

		Convey("A readiness signal refills the recovery budget", func() {
			first.emit(engine.Event{Kind: engine.EventFailed, Err: errors.New("demuxer choked")})
			So(eventually(func() bool { return rig.count() == 2 }), ShouldBeTrue)

			rig.last().emit(engine.Event{Kind: engine.EventLoaded})
			time.Sleep(20 * time.Millisecond)

			// the full budget is available again
			for i := 0; i < maxAttempts; i++ {
				rig.last().emit(engine.Event{Kind: engine.EventFailed, Err: errors.New("demuxer choked")})
				So(eventually(func() bool { return rig.count() == i+3 }), ShouldBeTrue)
				So(c.State().Err.IsAbsent(), ShouldBeTrue)
			}
		})

		Convey("An initial load that never becomes ready times out into recovery", func() {
			So(eventually(func() bool { return rig.count() == 2 }), ShouldBeTrue)
		})

		Convey("Readiness cancels the pending load timeout", func() {
			first.emit(engine.Event{Kind: engine.EventLoaded})

			time.Sleep(3 * loadTimeout)
			So(rig.count(), ShouldEqual, 1)
			So(c.State().Err.IsAbsent(), ShouldBeTrue)
		})

		Convey("A newer load supersedes a pending retry", func() {
			backoffUnit = 100 * time.Millisecond

			c.do(func() {
				c.handleFailure(FailureEngine, errors.New("demuxer choked"))
			})
			So(c.ChangeQuality(media.QualityHigh), ShouldBeNil)
			So(rig.count(), ShouldEqual, 2)

			time.Sleep(500 * time.Millisecond)
			So(rig.count(), ShouldEqual, 2)
			So(c.State().Quality, ShouldEqual, media.QualityHigh)
		})

		Convey("Events of a replaced session are fenced off", func() {
			So(c.LoadShow(testShow(), ShowOptions{}), ShouldBeNil)
			So(rig.count(), ShouldEqual, 2)

			c.do(func() {
				c.handleEngineEvent(0, engine.Event{Kind: engine.EventFailed, Err: errors.New("late failure")})
			})

			So(c.State().Err.IsAbsent(), ShouldBeTrue)
			So(rig.count(), ShouldEqual, 2)
		})
	})
}

func TestControllerLocalExemption(t *testing.T) {
	Convey("Given a local session", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		So(c.LoadShow(testShow(), ShowOptions{LocalPath: "/downloads/heute.mp4"}), ShouldBeNil)

		Convey("No load timeout is armed", func() {
			time.Sleep(3 * loadTimeout)

			So(rig.count(), ShouldEqual, 1)
			So(c.State().Err.IsAbsent(), ShouldBeTrue)
		})

		Convey("Failures bypass the recovery machinery", func() {
			c.do(func() {
				c.handleFailure(FailureEngine, errors.New("file vanished"))
			})

			So(rig.count(), ShouldEqual, 1)
			So(c.State().Err.IsAbsent(), ShouldBeTrue)
		})
	})
}
