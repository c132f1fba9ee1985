// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/constant"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/tui"
	"github.com/zapp-cli/zapp/version"
)

func completionQualities(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(media.Qualities(), func(q media.Quality, _ int) string {
		return q.String()
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
	rootCmd.Flags().BoolP("continue", "c", false, "Open the saved positions instead of the channel picker")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("quality", "q", "", "Quality tier to prefer for this run (low, medium, high)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("quality", completionQualities))
	lo.Must0(viper.BindPFlag(key.PlaybackQuality, rootCmd.PersistentFlags().Lookup("quality")))

	rootCmd.PersistentFlags().BoolP("save-position", "P", true, "Persist playback positions of shows to the watch history")
	lo.Must0(viper.BindPFlag(key.HistorySavePosition, rootCmd.PersistentFlags().Lookup("save-position")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd defines the entry point for the zapp application.
var rootCmd = &cobra.Command{
	Use:   constant.Zapp,
	Short: "A command-line player for German public broadcasting",
	Long: constant.Banner + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Live channels and Mediathek shows, straight from the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		handleErr(playInteractive(tui.Options{
			Resume: lo.Must(cmd.Flags().GetBool("continue")),
		}))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
