package history

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/media"
)

func init() {
	filesystem.SetMemMapFs()
	viper.SetDefault(key.HistoryCompletionPercentage, 95)
	viper.SetDefault(key.HistorySavePosition, true)
}

func TestHistory(t *testing.T) {
	Convey("Given a show", t, func() {
		So(Clear(), ShouldBeNil)

		show := &media.Show{
			ID:       "tagesschau-2000",
			Title:    "Tagesschau 20:00 Uhr",
			Topic:    "Tagesschau",
			Duration: 15 * time.Minute,
			URLs: media.VideoURLSet{
				Medium: "https://media.tagesschau.de/ts2000_m.mp4",
				High:   "https://media.tagesschau.de/ts2000_h.mp4",
			},
		}

		Convey("When saving a position", func() {
			err := Save(show, 5*time.Minute, 15*time.Minute)
			So(err, ShouldBeNil)

			Convey("Then the record is retrievable", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved[show.ID], ShouldNotBeNil)
				So(saved[show.ID].Position, ShouldEqual, 5*time.Minute)
				So(saved[show.ID].Percentage(), ShouldAlmostEqual, 100.0/3, 0.01)
			})

			Convey("Then the record reconstructs a playable show", func() {
				saved, _ := Get()
				restored := saved[show.ID].Show()
				So(restored.ID, ShouldEqual, show.ID)
				So(restored.Title, ShouldEqual, show.Title)
				So(restored.URLs, ShouldResemble, show.URLs)
				So(restored.URLs.Available(), ShouldNotBeEmpty)
			})

			Convey("And For resolves the resume point", func() {
				position, ok := For(show)
				So(ok, ShouldBeTrue)
				So(position, ShouldEqual, 5*time.Minute)
			})

			Convey("And rewinding moves the resume point backward", func() {
				So(Save(show, 2*time.Minute, 15*time.Minute), ShouldBeNil)
				position, _ := For(show)
				So(position, ShouldEqual, 2*time.Minute)
			})
		})

		Convey("When saving past the completion percentage", func() {
			So(Save(show, 5*time.Minute, 15*time.Minute), ShouldBeNil)
			So(Save(show, 897*time.Second, 900*time.Second), ShouldBeNil)

			Convey("Then the record is dropped as finished", func() {
				_, ok := For(show)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When removing a record", func() {
			So(Save(show, 5*time.Minute, 15*time.Minute), ShouldBeNil)
			saved, _ := Get()
			So(Remove(saved[show.ID]), ShouldBeNil)

			_, ok := For(show)
			So(ok, ShouldBeFalse)
		})

		Convey("Store honors the save toggle", func() {
			viper.Set(key.HistorySavePosition, false)
			So(Store{}.Save(show, 5*time.Minute, 15*time.Minute), ShouldBeNil)
			_, ok := For(show)
			So(ok, ShouldBeFalse)
			viper.Set(key.HistorySavePosition, true)
		})
	})
}
