// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/playback"
	"github.com/zapp-cli/zapp/recent"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/tui"
)

func completionChannels(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(media.Channels(), func(c *media.Channel, _ int) string {
		return c.ID
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watchCmd plays the live stream of a channel.
var watchCmd = &cobra.Command{
	Use:   "watch [channel]",
	Short: "Play the live stream of a channel",
	Long: `Start live playback of a public-broadcasting channel.

The channel may be given by id or name; close-enough spellings are
matched against the registry. Without an argument an interactive
selection is offered.`,
	Example:           "  zapp watch das_erste\n  zapp watch \"zdf neo\"\n  zapp watch -q high arte",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionChannels,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		var (
			channel *media.Channel
			err     error
		)

		if len(args) == 0 {
			channel, err = pickChannel()
		} else {
			channel, err = resolveChannel(args[0])
		}
		handleErr(err)

		if err := recent.Remember(channel); err != nil {
			log.Warnf("remembering channel: %s", err)
		}

		autoplay := func(ctrl *playback.Controller) error {
			return ctrl.LoadLiveStream(channel, mo.None[media.Quality]())
		}

		if !viper.GetBool(key.TUIStatusView) {
			handleErr(playHeadless(autoplay))
			return
		}

		handleErr(playInteractive(tui.Options{Autoplay: autoplay}))
	},
}

// resolveChannel finds a channel by id, name, or a close spelling of
// either. Watch frequency breaks ties between fuzzy candidates.
func resolveChannel(query string) (*media.Channel, error) {
	if channel, ok := media.ChannelByID(strings.ToLower(query)); ok {
		return channel, nil
	}

	if channel, ok := recent.Suggest(query).Get(); ok {
		return channel, nil
	}

	return nil, errUnknownChannel(query)
}

func errUnknownChannel(query string) error {
	closest := lo.MinBy(media.Channels(), func(a *media.Channel, b *media.Channel) bool {
		return levenshtein.Distance(query, a.Name) < levenshtein.Distance(query, b.Name)
	})

	return fmt.Errorf(
		"unknown channel %s, did you mean %s?",
		style.Fg(color.Red)(query),
		style.Fg(color.Yellow)(closest.Name),
	)
}

// pickChannel offers an interactive selection over the ranked registry.
func pickChannel() (*media.Channel, error) {
	channels := recent.Ranked(media.Channels())

	prompt := &survey.Select{
		Message: "Watch which channel?",
		Options: lo.Map(channels, func(c *media.Channel, _ int) string {
			return c.Name
		}),
		PageSize: 12,
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		return nil, err
	}

	return channels[index], nil
}
