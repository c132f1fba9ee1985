package cleanup

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zapp-cli/zapp/filesystem"
	"github.com/zapp-cli/zapp/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSweepLogs(t *testing.T) {
	Convey("Given dated log files", t, func() {
		fs := filesystem.API()
		stale := filepath.Join(where.Logs(), "2020-01-01.log")
		fresh := filepath.Join(where.Logs(), "fresh.log")

		So(fs.WriteFile(stale, []byte("old"), 0666), ShouldBeNil)
		So(fs.WriteFile(fresh, []byte("new"), 0666), ShouldBeNil)
		So(fs.Chtimes(stale, time.Now(), time.Now().Add(-30*24*time.Hour)), ShouldBeNil)

		Convey("When sweeping", func() {
			sweepLogs()

			Convey("Then only files past the retention window are removed", func() {
				So(lo.Must(fs.Exists(stale)), ShouldBeFalse)
				So(lo.Must(fs.Exists(fresh)), ShouldBeTrue)
			})
		})
	})
}
