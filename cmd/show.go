// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/history"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/playback"
	"github.com/zapp-cli/zapp/tui"
	"github.com/zapp-cli/zapp/util"
)

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("title", "t", "", "Display title of the show")
	showCmd.Flags().String("topic", "", "Series or topic the show belongs to")
	showCmd.Flags().StringSliceP("url", "u", []string{}, "Stream URL, repeatable, ordered lowest to highest quality")
	showCmd.Flags().StringP("local", "l", "", "Play a downloaded copy instead of streaming")
	showCmd.Flags().StringP("id", "i", "", "Stable identifier used for the watch history")
	showCmd.Flags().DurationP("start", "s", 0, "Start playback at the given offset (e.g. 12m30s)")
	showCmd.Flags().BoolP("continue", "c", false, "Resume from the saved position even when resuming is disabled")

	showCmd.MarkFlagsMutuallyExclusive("start", "continue")
}

// showCmd plays an on-demand show.
var showCmd = &cobra.Command{
	Use:   "show [url...]",
	Short: "Play an on-demand show from its stream URLs or a local file",
	Long: `Play a Mediathek show outside of the live program.

Stream URLs are assigned to quality tiers in the order given, lowest
first. Playback starts on the lowest available tier unless a quality
override is set. Positions are saved on teardown and picked up again on
the next run while resuming is enabled.`,
	Example: strings.Join([]string{
		`  zapp show -t "Tagesschau 20:00 Uhr" https://media.tagesschau.de/video/ts2000.mp4`,
		`  zapp show -l ~/Downloads/doku.mp4 -t "Die Nordsee von oben"`,
		`  zapp show -c -i ts2000 -u https://cdn.example.de/low.mp4 -u https://cdn.example.de/high.mp4`,
	}, "\n"),
	Args: cobra.MaximumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		urls := append(args, lo.Must(cmd.Flags().GetStringSlice("url"))...)
		local := lo.Must(cmd.Flags().GetString("local"))

		if len(urls) == 0 && local == "" {
			handleErr(errors.New("either stream URLs or a local file is required"))
		}
		if len(urls) > 3 {
			handleErr(fmt.Errorf("a show has at most three quality tiers, got %d URLs", len(urls)))
		}

		show := &media.Show{
			ID:    lo.Must(cmd.Flags().GetString("id")),
			Title: lo.Must(cmd.Flags().GetString("title")),
			Topic: lo.Must(cmd.Flags().GetString("topic")),
			URLs:  urlSet(urls),
		}

		if show.Title == "" {
			show.Title = fallbackTitle(urls, local)
		}
		if show.ID == "" {
			show.ID = util.SanitizeFilename(strings.ToLower(show.Title))
		}

		opts := playback.ShowOptions{
			LocalPath: local,
			StartAt:   lo.Must(cmd.Flags().GetDuration("start")),
		}

		// The persistent quality flag overrides the lowest-tier default
		// only when it was given explicitly.
		if cmd.Flags().Changed("quality") {
			quality, err := media.ParseQuality(viper.GetString(key.PlaybackQuality))
			handleErr(err)
			opts.Quality = mo.Some(quality)
		}

		if !cmd.Flags().Changed("start") &&
			(lo.Must(cmd.Flags().GetBool("continue")) || viper.GetBool(key.PlaybackResume)) {
			if position, ok := history.For(show); ok {
				opts.StartAt = position
			}
		}

		autoplay := func(ctrl *playback.Controller) error {
			return ctrl.LoadShow(show, opts)
		}

		if !viper.GetBool(key.TUIStatusView) {
			handleErr(playHeadless(autoplay))
			return
		}

		handleErr(playInteractive(tui.Options{Autoplay: autoplay}))
	},
}

// urlSet assigns the given URLs to quality tiers, lowest first.
func urlSet(urls []string) media.VideoURLSet {
	var set media.VideoURLSet

	tiers := []*string{&set.Low, &set.Medium, &set.High}
	for i, url := range urls {
		*tiers[i] = url
	}

	return set
}

func fallbackTitle(urls []string, local string) string {
	if local != "" {
		return util.FileStem(local)
	}

	return util.FileStem(urls[0])
}
