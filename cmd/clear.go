// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"

	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/util"
	"github.com/zapp-cli/zapp/where"
)

// clearTarget is one piece of on-disk state the clear command can remove.
type clearTarget struct {
	name     string
	flag     string
	short    mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{name: "cache directory", flag: "cache", short: mo.Some("c"), location: where.Cache},
	{name: "watch history", flag: "history", short: mo.Some("s"), location: where.History},
	{name: "channel recents", flag: "recents", short: mo.Some("r"), location: where.Recents},
	{name: "log directory", flag: "logs", short: mo.Some("l"), location: where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := "clear " + target.name
		if short, ok := target.short.Get(); ok {
			clearCmd.Flags().BoolP(target.flag, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.flag, false, help)
		}
	}
}

// clearCmd removes cached and recorded application state.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear temporary and cached application artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		for _, target := range clearTargets {
			if !lo.Must(cmd.Flags().GetBool(target.flag)) {
				continue
			}
			anyCleared = true

			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := util.Delete(target.location())
			erase()

			// A target that never existed counts as cleared.
			if err != nil && !os.IsNotExist(err) {
				handleErr(err)
			}
			fmt.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
