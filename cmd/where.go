// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"

	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/where"
)

// whereTarget is one resolvable application path exposed through the where command.
type whereTarget struct {
	name   string
	path   func() string
	flag   string
	short  mo.Option[string]
	hidden bool
}

// register adds the boolean selector flag for this target to the command.
func (t *whereTarget) register(cmd *cobra.Command) {
	if short, ok := t.short.Get(); ok {
		cmd.Flags().BoolP(t.flag, short, false, t.name+" path")
	} else {
		cmd.Flags().Bool(t.flag, false, t.name+" path")
	}

	if t.hidden {
		lo.Must0(cmd.Flags().MarkHidden(t.flag))
	}
}

var whereTargets = []*whereTarget{
	{name: "Config", path: where.Config, flag: "config", short: mo.Some("c")},
	{name: "Logs", path: where.Logs, flag: "logs", short: mo.Some("l")},
	{name: "Cache", path: where.Cache, flag: "cache", short: mo.None[string](), hidden: true},
	{name: "History", path: where.History, flag: "history", short: mo.None[string](), hidden: true},
	{name: "Recents", path: where.Recents, flag: "recents", short: mo.None[string](), hidden: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, t := range whereTargets {
		t.register(whereCmd)
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(whereTargets, func(t *whereTarget, _ int) string {
		return t.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

// whereCmd prints where the application keeps its files.
var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration, logs and state live on disk",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range whereTargets {
			if lo.Must(cmd.Flags().GetBool(t.flag)) {
				cmd.Println(t.path())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Filter(whereTargets, func(t *whereTarget, _ int) bool {
			return !t.hidden
		})

		for i, t := range visible {
			cmd.Printf("%s %s\n", header(t.name+"?"), style.Fg(color.Yellow)("--"+t.flag))
			cmd.Println(t.path())

			if i < len(visible)-1 {
				cmd.Println()
			}
		}
	},
}
