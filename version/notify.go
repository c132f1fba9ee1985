// Package version compares the running build against the latest published release.
package version

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/constant"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/util"
)

// Notify prints a short banner when a newer release is out. It is a
// no-op when the version check is disabled in the config.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a newer release...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err != nil {
		return
	}

	if newer, err := Compare(latest, constant.Version); err != nil || newer <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/zapp-cli/zapp/releases/tag/v"+latest),
	)
}
