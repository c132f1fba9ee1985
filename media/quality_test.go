package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuality(t *testing.T) {
	Convey("Quality", t, func() {
		Convey("Tiers are ordered lowest to highest", func() {
			So(QualityLow, ShouldBeLessThan, QualityMedium)
			So(QualityMedium, ShouldBeLessThan, QualityHigh)
			So(Qualities(), ShouldResemble, []Quality{QualityLow, QualityMedium, QualityHigh})
		})

		Convey("Bitrate caps grow with the tier", func() {
			So(QualityLow.MaxBitrate(), ShouldEqual, 700_000)
			So(QualityMedium.MaxBitrate(), ShouldEqual, 1_800_000)
			So(QualityHigh.MaxBitrate(), ShouldEqual, 3_000_000)
		})

		Convey("String round-trips through ParseQuality", func() {
			for _, q := range Qualities() {
				parsed, err := ParseQuality(q.String())
				So(err, ShouldBeNil)
				So(parsed, ShouldEqual, q)
			}
		})

		Convey("ParseQuality rejects unknown values", func() {
			_, err := ParseQuality("4k")
			So(err, ShouldNotBeNil)
		})
	})
}
