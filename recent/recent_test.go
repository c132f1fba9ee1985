package recent

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/media"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.ChannelsRankRecent, true)
}

func TestRecent(t *testing.T) {
	Convey("Given watch records", t, func() {
		arte, _ := media.ChannelByID("arte")
		zdf, _ := media.ChannelByID("zdf")

		Convey("When channels are watched", func() {
			So(Remember(arte), ShouldBeNil)
			So(Remember(arte), ShouldBeNil)
			So(Remember(zdf), ShouldBeNil)

			Convey("Then Ranked orders by watch frequency", func() {
				ranked := Ranked(media.Channels())
				So(ranked[0].ID, ShouldEqual, "arte")
				So(ranked[1].ID, ShouldEqual, "zdf")
			})

			Convey("And unwatched channels keep their registry order", func() {
				ranked := Ranked(media.Channels())
				So(ranked[2].ID, ShouldEqual, "das_erste")
				So(ranked[3].ID, ShouldEqual, "dreisat")
			})

			Convey("And ranking honors its toggle", func() {
				viper.Set(key.ChannelsRankRecent, false)
				ranked := Ranked(media.Channels())
				So(ranked[0].ID, ShouldEqual, media.Channels()[0].ID)
				viper.Set(key.ChannelsRankRecent, true)
			})

			Convey("And fuzzy suggestions prefer the most watched match", func() {
				// "ar" matches arte and several regional channels.
				got := Suggest("ar")
				So(got.IsPresent(), ShouldBeTrue)
				So(got.MustGet().ID, ShouldEqual, "arte")
			})
		})

		Convey("Suggest resolves exact names regardless of case", func() {
			got := Suggest("3SAT")
			So(got.IsPresent(), ShouldBeTrue)
			So(got.MustGet().ID, ShouldEqual, "dreisat")
		})

		Convey("Suggest resolves partial names", func() {
			got := Suggest("tagessch")
			So(got.IsPresent(), ShouldBeTrue)
			So(got.MustGet().ID, ShouldEqual, "tagesschau24")
		})

		Convey("Suggest rejects unknown input", func() {
			So(Suggest("qqqq").IsAbsent(), ShouldBeTrue)
			So(Suggest("   ").IsAbsent(), ShouldBeTrue)
		})
	})
}
