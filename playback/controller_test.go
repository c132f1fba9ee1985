package playback

import (
	"testing"
	"time"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/engine"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/media"
)

func TestControllerDefaults(t *testing.T) {
	Convey("A fresh controller", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		Convey("Publishes default state until something is loaded", func() {
			st := c.State()

			So(st.Source, ShouldBeNil)
			So(st.IsPlaying, ShouldBeFalse)
			So(st.IsBuffering, ShouldBeTrue)
			So(st.IsLoadingStream, ShouldBeFalse)
			So(st.Err.IsAbsent(), ShouldBeTrue)
			So(st.SleepRemaining.IsAbsent(), ShouldBeTrue)
			So(rig.count(), ShouldEqual, 0)
		})

		Convey("Ignores playback operations without a session", func() {
			c.Play()
			c.Pause()
			c.Seek(time.Minute)
			c.RetryLastLoad()

			So(rig.count(), ShouldEqual, 0)
			So(c.State().IsPlaying, ShouldBeFalse)
		})
	})
}

func TestControllerLiveLoad(t *testing.T) {
	Convey("Given a controller", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		Convey("Loading a live stream", func() {
			So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)

			Convey("Spawns one engine with a bitrate cap for the default tier", func() {
				So(rig.count(), ShouldEqual, 1)

				eng := rig.last()
				So(eventually(func() bool { return eng.loadCount() == 1 }), ShouldBeTrue)

				load := eng.lastLoad()
				So(load.target, ShouldEqual, testChannel().StreamURL)
				So(load.opts.MaxBitrate, ShouldEqual, 1_800_000)
				So(load.opts.MinimalBuffer, ShouldBeTrue)
				So(load.opts.DisableSubtitles, ShouldBeTrue)
				So(load.opts.Local, ShouldBeFalse)
			})

			Convey("Publishes a loading session with play intent", func() {
				st := c.State()

				So(st.IsPlaying, ShouldBeTrue)
				So(st.IsBuffering, ShouldBeTrue)
				So(st.IsLoadingStream, ShouldBeTrue)
				So(st.Quality, ShouldEqual, media.QualityMedium)
				So(st.AvailableQualities, ShouldResemble, media.Qualities())

				_, live := st.Source.(media.Live)
				So(live, ShouldBeTrue)
			})

			Convey("Buffer readiness clears the flags and reissues play", func() {
				eng := rig.last()
				So(eventually(func() bool { return eng.playCount() == 1 }), ShouldBeTrue)

				eng.emit(engine.Event{Kind: engine.EventBufferReady})

				So(eventually(func() bool { return !c.State().IsBuffering }), ShouldBeTrue)
				So(c.State().IsLoadingStream, ShouldBeFalse)
				So(eventually(func() bool { return eng.playCount() == 2 }), ShouldBeTrue)
			})

			Convey("A buffering dip flips the flag until the cache recovers", func() {
				eng := rig.last()
				eng.emit(engine.Event{Kind: engine.EventBufferReady})
				So(eventually(func() bool { return !c.State().IsBuffering }), ShouldBeTrue)

				eng.emit(engine.Event{Kind: engine.EventBuffering})
				So(eventually(func() bool { return c.State().IsBuffering }), ShouldBeTrue)

				eng.emit(engine.Event{Kind: engine.EventBufferReady})
				So(eventually(func() bool { return !c.State().IsBuffering }), ShouldBeTrue)
			})

			Convey("The end of the stream clears the playback flags", func() {
				eng := rig.last()
				eng.emit(engine.Event{Kind: engine.EventBufferReady})
				eng.emit(engine.Event{Kind: engine.EventEnded})

				So(eventually(func() bool { return !c.State().IsPlaying }), ShouldBeTrue)
				So(c.State().IsBuffering, ShouldBeFalse)
				So(c.State().Err.IsAbsent(), ShouldBeTrue)
			})
		})

		Convey("The configured quality preference is honored", func() {
			viper.Set(key.PlaybackQuality, "high")
			Reset(func() {
				viper.Set(key.PlaybackQuality, "medium")
			})

			So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)
			So(c.State().Quality, ShouldEqual, media.QualityHigh)

			eng := rig.last()
			So(eventually(func() bool { return eng.loadCount() == 1 }), ShouldBeTrue)
			So(eng.lastLoad().opts.MaxBitrate, ShouldEqual, 3_000_000)
		})

		Convey("An explicit quality wins over the preference", func() {
			So(c.LoadLiveStream(testChannel(), mo.Some(media.QualityLow)), ShouldBeNil)
			So(c.State().Quality, ShouldEqual, media.QualityLow)
		})

		Convey("A nil channel is rejected", func() {
			So(c.LoadLiveStream(nil, mo.None[media.Quality]()), ShouldNotBeNil)
			So(rig.count(), ShouldEqual, 0)
		})
	})
}

func TestControllerShowLoad(t *testing.T) {
	Convey("Given a controller", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		Convey("Loading a show picks the lowest available tier by default", func() {
			show := testShow()
			So(c.LoadShow(show, ShowOptions{}), ShouldBeNil)

			st := c.State()
			So(st.Quality, ShouldEqual, media.QualityLow)
			So(st.Duration, ShouldEqual, show.Duration)

			eng := rig.last()
			So(eventually(func() bool { return eng.loadCount() == 1 }), ShouldBeTrue)

			load := eng.lastLoad()
			So(load.target, ShouldEqual, show.URLs.Low)
			So(load.opts.MaxBitrate, ShouldEqual, 0)
		})

		Convey("A requested tier falls back to the closest available one", func() {
			show := testShow()
			show.URLs.Low = ""

			So(c.LoadShow(show, ShowOptions{Quality: mo.Some(media.QualityLow)}), ShouldBeNil)
			So(c.State().Quality, ShouldEqual, media.QualityMedium)
			So(c.State().AvailableQualities, ShouldResemble, []media.Quality{media.QualityMedium, media.QualityHigh})
		})

		Convey("A start position is forwarded to the engine", func() {
			So(c.LoadShow(testShow(), ShowOptions{StartAt: 5 * time.Minute}), ShouldBeNil)

			eng := rig.last()
			So(eventually(func() bool { return eng.loadCount() == 1 }), ShouldBeTrue)
			So(eng.lastLoad().opts.StartAt, ShouldEqual, 5*time.Minute)
			So(c.State().Position, ShouldEqual, 5*time.Minute)
		})

		Convey("A local path plays the downloaded copy", func() {
			So(c.LoadShow(testShow(), ShowOptions{LocalPath: "/downloads/heute.mp4"}), ShouldBeNil)

			eng := rig.last()
			So(eventually(func() bool { return eng.loadCount() == 1 }), ShouldBeTrue)

			load := eng.lastLoad()
			So(load.target, ShouldEqual, "/downloads/heute.mp4")
			So(load.opts.Local, ShouldBeTrue)
			So(c.State().Source.IsLocal(), ShouldBeTrue)
			So(c.State().AvailableQualities, ShouldBeEmpty)
		})

		Convey("A show without streams is rejected", func() {
			show := testShow()
			show.URLs = media.VideoURLSet{}

			So(c.LoadShow(show, ShowOptions{}), ShouldNotBeNil)
			So(rig.count(), ShouldEqual, 0)
		})

		Convey("Loading a new source tears the previous session down", func() {
			So(c.LoadShow(testShow(), ShowOptions{}), ShouldBeNil)
			first := rig.last()

			So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)

			So(rig.count(), ShouldEqual, 2)
			So(eventually(first.isClosed), ShouldBeTrue)
		})
	})
}

func TestControllerLoadVideo(t *testing.T) {
	Convey("Given a controller", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		channel := testChannel()
		show := testShow()

		Convey("The channel's stream url means live", func() {
			So(c.LoadVideo(channel.StreamURL, nil, channel, 0), ShouldBeNil)

			src, ok := c.State().Source.(media.Live)
			So(ok, ShouldBeTrue)
			So(src.Channel.ID, ShouldEqual, channel.ID)

			eng := rig.last()
			So(eventually(func() bool { return eng.loadCount() == 1 }), ShouldBeTrue)
			So(eng.lastLoad().opts.MaxBitrate, ShouldBeGreaterThan, 0)
		})

		Convey("A url of the show means on-demand at that tier", func() {
			So(c.LoadVideo(show.URLs.High, show, nil, 2*time.Minute), ShouldBeNil)

			src, ok := c.State().Source.(media.OnDemand)
			So(ok, ShouldBeTrue)
			So(src.Show.ID, ShouldEqual, show.ID)
			So(c.State().Quality, ShouldEqual, media.QualityHigh)
			So(c.State().Position, ShouldEqual, 2*time.Minute)
		})

		Convey("A bare path with show metadata means a local copy", func() {
			So(c.LoadVideo("/downloads/heute.mp4", show, nil, 0), ShouldBeNil)

			src, ok := c.State().Source.(media.OnDemand)
			So(ok, ShouldBeTrue)
			So(src.IsLocal(), ShouldBeTrue)
		})

		Convey("Anything else is a direct source", func() {
			So(c.LoadVideo("https://example.org/other.mp4", show, nil, 0), ShouldBeNil)

			src, ok := c.State().Source.(media.Direct)
			So(ok, ShouldBeTrue)
			So(src.Title(), ShouldEqual, show.Title)
			So(c.State().AvailableQualities, ShouldBeEmpty)
		})

		Convey("An empty url is rejected", func() {
			So(c.LoadVideo("", nil, nil, 0), ShouldNotBeNil)
		})
	})
}

func TestControllerTransportControls(t *testing.T) {
	Convey("Given a playing session", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		So(c.LoadShow(testShow(), ShowOptions{}), ShouldBeNil)
		eng := rig.last()
		So(eventually(func() bool { return eng.playCount() == 1 }), ShouldBeTrue)

		Convey("Pause clears the intent and pauses the engine", func() {
			c.Pause()

			So(c.State().IsPlaying, ShouldBeFalse)
			So(eventually(func() bool { return eng.pauseCount() == 1 }), ShouldBeTrue)

			Convey("Play restores it", func() {
				c.Play()

				So(c.State().IsPlaying, ShouldBeTrue)
				So(eventually(func() bool { return eng.playCount() == 2 }), ShouldBeTrue)
			})

			Convey("TogglePlayPause flips based on the intent", func() {
				c.TogglePlayPause()
				So(c.State().IsPlaying, ShouldBeTrue)

				c.TogglePlayPause()
				So(c.State().IsPlaying, ShouldBeFalse)
			})
		})

		Convey("Seek clamps to the known duration", func() {
			eng.setStatus(engine.Status{Position: time.Minute, Duration: 10 * time.Minute, Seekable: true, Playing: true})
			So(eventually(func() bool { return c.State().Duration == 10*time.Minute }), ShouldBeTrue)

			c.Seek(15 * time.Minute)
			So(eventually(func() bool { return eng.seekCount() == 1 }), ShouldBeTrue)
			So(eng.lastSeek(), ShouldEqual, 10*time.Minute)

			c.Seek(-30 * time.Second)
			So(eventually(func() bool { return eng.seekCount() == 2 }), ShouldBeTrue)
			So(eng.lastSeek(), ShouldEqual, 0)
		})

		Convey("The sampler publishes position, duration, and seekable range", func() {
			eng.setStatus(engine.Status{Position: 3 * time.Minute, Duration: 10 * time.Minute, Seekable: true, Playing: true})

			So(eventually(func() bool { return c.State().Position == 3*time.Minute }), ShouldBeTrue)

			st := c.State()
			So(st.Duration, ShouldEqual, 10*time.Minute)

			seekable, ok := st.Seekable.Get()
			So(ok, ShouldBeTrue)
			So(seekable.Start, ShouldEqual, 0)
			So(seekable.End, ShouldEqual, 10*time.Minute)
		})
	})
}

func TestControllerQualityChange(t *testing.T) {
	Convey("Given a controller", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		Convey("On a live session it reloads with the new bitrate cap", func() {
			So(c.LoadLiveStream(testChannel(), mo.Some(media.QualityLow)), ShouldBeNil)
			first := rig.last()

			So(c.ChangeQuality(media.QualityHigh), ShouldBeNil)

			So(rig.count(), ShouldEqual, 2)
			So(eventually(first.isClosed), ShouldBeTrue)
			So(c.State().Quality, ShouldEqual, media.QualityHigh)

			second := rig.last()
			So(eventually(func() bool { return second.loadCount() == 1 }), ShouldBeTrue)
			So(second.lastLoad().opts.MaxBitrate, ShouldEqual, 3_000_000)
		})

		Convey("On an on-demand session it keeps the position", func() {
			show := testShow()
			So(c.LoadShow(show, ShowOptions{}), ShouldBeNil)

			rig.last().setStatus(engine.Status{Position: 7 * time.Minute, Duration: 29 * time.Minute, Seekable: true, Playing: true})
			So(eventually(func() bool { return c.State().Position == 7*time.Minute }), ShouldBeTrue)

			So(c.ChangeQuality(media.QualityHigh), ShouldBeNil)

			second := rig.last()
			So(eventually(func() bool { return second.loadCount() == 1 }), ShouldBeTrue)

			load := second.lastLoad()
			So(load.target, ShouldEqual, show.URLs.High)
			So(load.opts.StartAt, ShouldEqual, 7*time.Minute)
			So(load.opts.MaxBitrate, ShouldEqual, 0)
		})

		Convey("On a local session it is ignored", func() {
			So(c.LoadShow(testShow(), ShowOptions{LocalPath: "/downloads/heute.mp4"}), ShouldBeNil)

			So(c.ChangeQuality(media.QualityHigh), ShouldBeNil)
			So(rig.count(), ShouldEqual, 1)
		})

		Convey("Without a session it is a no-op", func() {
			So(c.ChangeQuality(media.QualityHigh), ShouldBeNil)
			So(rig.count(), ShouldEqual, 0)
		})
	})
}

func TestControllerUpdates(t *testing.T) {
	Convey("Given a controller with a subscriber", t, func() {
		restore := fastTimers()
		rig := &engineRig{}
		c := NewController(Options{Engine: rig.factory})
		Reset(func() {
			c.Close()
			restore()
		})

		updates, cancel := c.Updates()

		Convey("The subscription is primed with the current snapshot", func() {
			select {
			case st := <-updates:
				So(st.IsBuffering, ShouldBeTrue)
				So(st.Source, ShouldBeNil)
			case <-time.After(time.Second):
				So("no snapshot", ShouldBeEmpty)
			}
		})

		Convey("State transitions are streamed", func() {
			<-updates

			So(c.LoadLiveStream(testChannel(), mo.None[media.Quality]()), ShouldBeNil)

			var seenLoading bool
			deadline := time.After(time.Second)
			for !seenLoading {
				select {
				case st := <-updates:
					seenLoading = st.IsLoadingStream && st.IsPlaying
				case <-deadline:
					So("no loading snapshot", ShouldBeEmpty)
				}
			}

			So(seenLoading, ShouldBeTrue)
		})

		Convey("Cancel closes the channel", func() {
			cancel()

			So(eventually(func() bool {
				for {
					select {
					case _, ok := <-updates:
						if !ok {
							return true
						}
					default:
						return false
					}
				}
			}), ShouldBeTrue)
		})
	})
}
