package where

import (
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/zapp-cli/zapp/filesystem"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestDirectories(t *testing.T) {
	Convey("Directory resolvers create their directory", t, func() {
		targets := []struct {
			name    string
			resolve func() string
		}{
			{"Config", Config},
			{"Cache", Cache},
			{"Logs", Logs},
		}

		for _, target := range targets {
			Convey(target.name+"()", func() {
				path := target.resolve()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}
	})
}

func TestFiles(t *testing.T) {
	Convey("File resolvers", t, func() {
		Convey("History() names a file inside Config()", func() {
			path := History()
			So(path, ShouldStartWith, Config())
			So(path, ShouldEndWith, "positions.json")
		})

		Convey("Recents() names a file inside Cache()", func() {
			path := Recents()
			So(path, ShouldStartWith, Cache())
			So(path, ShouldEndWith, "recents.json")
		})
	})
}

func TestConfigOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/custom/zapp-config")

	Convey("Config() honors the override variable", t, func() {
		So(Config(), ShouldEqual, "/custom/zapp-config")
		So(lo.Must(filesystem.API().IsDir("/custom/zapp-config")), ShouldBeTrue)
	})
}
