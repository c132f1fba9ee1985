package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Comparing semantic versions", t, func() {
		Convey("Orders by major, minor, patch", func() {
			for _, tc := range []struct {
				a, b string
				want int
			}{
				{"1.0.0", "1.0.0", 0},
				{"v1.0.0", "1.0.0", 0},
				{"1.0.1", "1.0.0", 1},
				{"1.1.0", "1.0.9", 1},
				{"2.0.0", "1.9.9", 1},
				{"0.1.0", "0.2.0", -1},
			} {
				got, err := Compare(tc.a, tc.b)

				So(err, ShouldBeNil)
				So(got, ShouldEqual, tc.want)
			}
		})

		Convey("Rejects garbage", func() {
			_, err := Compare("banana", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})
}
