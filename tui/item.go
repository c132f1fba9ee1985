// Package tui implements the interactive terminal interface.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/zapp-cli/zapp/history"
	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/util"
)

// listItem implements the list.Item interface for the domain models shown
// in the terminal lists.
type listItem struct {
	internal any
}

// Title returns the primary display text for the list item.
func (t *listItem) Title() string {
	switch e := t.internal.(type) {
	case *media.Channel:
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("●")
		return dot + " " + e.Name
	case *history.SavedPosition:
		return e.Title
	default:
		return t.FilterValue()
	}
}

// Description returns the secondary metadata line for the list item.
func (t *listItem) Description() string {
	switch e := t.internal.(type) {
	case *media.Channel:
		return e.Website
	case *history.SavedPosition:
		progress := lipgloss.NewStyle().
			Foreground(style.Yellow).
			Render(fmt.Sprintf("(%.0f%%)", e.Percentage()))

		clock := fmt.Sprintf("%s / %s %s",
			util.FormatDuration(e.Position), util.FormatDuration(e.Duration), progress)

		if e.Topic != "" {
			return e.Topic + " : " + clock
		}
		return clock
	default:
		return ""
	}
}

// FilterValue returns the string used for list filtering.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *media.Channel:
		return e.Name
	case *history.SavedPosition:
		if e.Topic != "" {
			return e.Title + " " + e.Topic
		}
		return e.Title
	default:
		return ""
	}
}
