// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"encoding/json"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/open"
	"github.com/zapp-cli/zapp/recent"
	"github.com/zapp-cli/zapp/style"
)

func init() {
	rootCmd.AddCommand(channelsCmd)

	channelsCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	channelsCmd.Flags().Bool("schema", false, "Print the JSON schema of the channel model instead")
	channelsCmd.Flags().BoolP("raw", "r", false, "Print channel ids only")
	channelsCmd.MarkFlagsMutuallyExclusive("json", "schema", "raw")

	channelsCmd.SetOut(os.Stdout)
}

// channelsCmd displays the bundled live channel registry.
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Display the bundled live channel registry",
	Long: `Display every channel the player knows, ordered by watch frequency.
The structured output modes are meant for scripting against the registry.`,
	Run: func(cmd *cobra.Command, args []string) {
		channels := recent.Ranked(media.Channels())

		switch {
		case lo.Must(cmd.Flags().GetBool("schema")):
			reflector := new(jsonschema.Reflector)
			reflector.Anonymous = true

			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reflector.Reflect(&media.Channel{})))
		case lo.Must(cmd.Flags().GetBool("json")):
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(channels))
		case lo.Must(cmd.Flags().GetBool("raw")):
			for _, channel := range channels {
				cmd.Println(channel.ID)
			}
		default:
			for i, channel := range channels {
				cmd.Printf(
					"%s %s %s\n",
					style.Fg(color.New(channel.Color))("●"),
					style.Bold(channel.Name),
					style.Faint(channel.ID),
				)
				cmd.Println(style.Faint("  " + channel.Website))

				if i < len(channels)-1 {
					cmd.Println()
				}
			}
		}
	},
}

func init() {
	channelsCmd.AddCommand(channelsOpenCmd)
}

// channelsOpenCmd opens the homepage of a channel in the browser.
var channelsOpenCmd = &cobra.Command{
	Use:               "open [channel]",
	Short:             "Open the homepage of a channel in the default browser",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionChannels,
	Run: func(cmd *cobra.Command, args []string) {
		channel, err := resolveChannel(args[0])
		handleErr(err)

		handleErr(open.Start(channel.Website))
	},
}
