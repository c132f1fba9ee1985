// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/history"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/playback"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/tui"
	"github.com/zapp-cli/zapp/util"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

// historyCmd manages saved playback positions.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved playback positions",
}

// savedPositions returns the stored records ordered most recent first.
func savedPositions() ([]*history.SavedPosition, error) {
	saved, err := history.Get()
	if err != nil {
		return nil, err
	}

	records := lo.Values(saved)
	sort.Slice(records, func(i, j int) bool {
		return records[i].SavedAt.After(records[j].SavedAt)
	})

	return records, nil
}

func init() {
	historyCmd.AddCommand(historyListCmd)

	historyListCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	historyListCmd.SetOut(os.Stdout)
}

// historyListCmd displays every saved position.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display the saved playback positions",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := savedPositions()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Println(style.Faint("no saved positions"))
			return
		}

		for i, record := range records {
			title := style.Bold(record.Title)
			if record.Topic != "" {
				title += " " + style.Faint(record.Topic)
			}
			cmd.Println(title)

			cmd.Printf(
				"  %s %s / %s  %s\n",
				style.Fg(color.Yellow)(fmt.Sprintf("(%2.0f%%)", record.Percentage())),
				util.FormatDuration(record.Position),
				util.FormatDuration(record.Duration),
				style.Faint(record.SavedAt.Format("2006-01-02 15:04")),
			)

			if i < len(records)-1 {
				cmd.Println()
			}
		}
	},
}

func init() {
	historyCmd.AddCommand(historyResumeCmd)
}

// historyResumeCmd restarts playback from a saved position. Without an
// argument the most recently saved entry is picked.
var historyResumeCmd = &cobra.Command{
	Use:     "resume [title]",
	Short:   "Resume playback from a saved position",
	Aliases: []string{"continue"},
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		records, err := savedPositions()
		handleErr(err)

		if len(records) == 0 {
			handleErr(errors.New("nothing to resume, the history is empty"))
		}

		record := records[0]
		if len(args) > 0 {
			record, err = matchRecord(records, strings.Join(args, " "))
			handleErr(err)
		}

		autoplay := func(ctrl *playback.Controller) error {
			return ctrl.LoadShow(record.Show(), playback.ShowOptions{StartAt: record.Position})
		}

		if !viper.GetBool(key.TUIStatusView) {
			handleErr(playHeadless(autoplay))
			return
		}

		handleErr(playInteractive(tui.Options{Autoplay: autoplay}))
	},
}

// matchRecord finds the saved position whose title or topic matches the
// query. Several matches are disambiguated interactively.
func matchRecord(records []*history.SavedPosition, query string) (*history.SavedPosition, error) {
	matched := lo.Filter(records, func(r *history.SavedPosition, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, r.Title) || fuzzy.MatchNormalizedFold(query, r.Topic)
	})

	switch len(matched) {
	case 0:
		return nil, fmt.Errorf("no saved position matches %s", style.Fg(color.Red)(query))
	case 1:
		return matched[0], nil
	}

	prompt := &survey.Select{
		Message: "Several saved positions match. Resume which one?",
		Options: lo.Map(matched, func(r *history.SavedPosition, _ int) string {
			return r.String()
		}),
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		return nil, err
	}

	return matched[index], nil
}

func init() {
	historyCmd.AddCommand(historyClearCmd)

	historyClearCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}

// historyClearCmd removes every saved position.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved playback position",
	Run: func(cmd *cobra.Command, args []string) {
		records, err := savedPositions()
		handleErr(err)

		if len(records) == 0 {
			fmt.Println(style.Faint("the history is already empty"))
			return
		}

		if !lo.Must(cmd.Flags().GetBool("force")) {
			confirm := survey.Confirm{
				Message: fmt.Sprintf("Remove %s?", util.Quantify(len(records), "saved position", "saved positions")),
				Default: false,
			}

			var response bool
			handleErr(survey.AskOne(&confirm, &response))

			if !response {
				return
			}
		}

		handleErr(history.Clear())
		fmt.Printf("%s history cleared\n", icon.Get(icon.Success))
	},
}
