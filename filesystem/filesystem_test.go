package filesystem

import (
	"testing"

	"github.com/spf13/afero"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBackend(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		Reset(SetOsFs)

		Convey("Defaults to the operating system", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Swaps to an in-memory backend", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Accepts an arbitrary backend", func() {
			SetBackend(afero.NewMemMapFs())
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}
