// Package tui implements the interactive terminal interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/playback"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case channelsState:
		output = b.viewChannels()
	case historyState:
		output = b.viewHistory()
	case statusState:
		output = b.viewStatus()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewChannels() string {
	return listExtraPaddingStyle.Render(b.channelsC.View())
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewStatus() string {
	st := b.playback

	if st.Source == nil {
		return b.renderLines(true, []string{
			style.Title("Now Playing"),
			"",
			style.Faint("nothing playing"),
		})
	}

	lines := []string{
		b.statusTitle(st),
		"",
		b.statusLine(st),
	}

	if timeline := b.timelineLine(st); timeline != "" {
		lines = append(lines, timeline)
	}
	if quality := qualityLine(st); quality != "" {
		lines = append(lines, quality)
	}
	if remaining, ok := st.SleepRemaining.Get(); ok {
		lines = append(lines, icon.Get(icon.Sleep)+" sleep in "+util.FormatDuration(remaining))
	}

	if playbackErr, ok := st.Err.Get(); ok {
		lines = append(lines, "",
			wrap.String(style.Fg(style.ErrorColor)(playbackErr.Error()), b.width))
	}

	return b.renderLines(true, lines)
}

// statusTitle renders the session headline: a brand-colored channel tag with
// a live badge, or the show title with its topic.
func (b *statefulBubble) statusTitle(st playback.State) string {
	switch src := st.Source.(type) {
	case media.Live:
		tag := style.Tag(color.New("230"), color.New(src.Channel.Color))(src.Channel.Name)
		return tag + " " + style.Fg(color.Red)(icon.Get(icon.Live)+" LIVE")
	case media.OnDemand:
		title := style.Title(src.Show.Title)
		if src.Show.Topic != "" {
			return title + " " + style.Faint(src.Show.Topic)
		}
		return title
	default:
		return style.Title(st.Source.Title())
	}
}

func (b *statefulBubble) statusLine(st playback.State) string {
	switch {
	case st.Err.IsPresent():
		return icon.Get(icon.Fail) + " failed"
	case st.IsLoadingStream:
		return b.spinnerC.View() + " loading stream"
	case st.IsBuffering:
		return b.spinnerC.View() + " buffering"
	case st.IsPlaying:
		return icon.Get(icon.Play) + " playing"
	default:
		return icon.Get(icon.Pause) + " paused"
	}
}

func (b *statefulBubble) timelineLine(st playback.State) string {
	if st.Duration <= 0 {
		if st.Position > 0 {
			return util.FormatDuration(st.Position)
		}
		return ""
	}

	fraction := float64(st.Position) / float64(st.Duration)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	return fmt.Sprintf("%s / %s  %s",
		util.FormatDuration(st.Position),
		util.FormatDuration(st.Duration),
		b.progressC.ViewAs(fraction))
}

func qualityLine(st playback.State) string {
	if len(st.AvailableQualities) == 0 {
		return ""
	}

	parts := make([]string, len(st.AvailableQualities))
	for i, q := range st.AvailableQualities {
		if q == st.Quality {
			parts[i] = style.Fg(style.AccentColor)(q.String())
		} else {
			parts[i] = style.Faint(q.String())
		}
	}

	return "quality: " + strings.Join(parts, " ")
}

func (b *statefulBubble) viewError() string {
	errorBody := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true).
		Render(fmt.Sprintf("%v", b.lastError))

	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			wrap.String(errorBody, b.width),
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
