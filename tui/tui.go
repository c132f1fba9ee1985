// Package tui implements the interactive terminal interface.
package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zapp-cli/zapp/playback"
)

// Options configures the terminal interface.
type Options struct {
	// Controller drives playback. It stays owned by the caller, which
	// closes it after Run returns.
	Controller *playback.Controller

	// Resume opens the saved positions view instead of the channel picker.
	Resume bool

	// Autoplay starts a session right away and opens the status view.
	Autoplay func(*playback.Controller) error
}

// Run executes the interface loop until the user quits.
func Run(options *Options) error {
	if options.Controller == nil {
		return errors.New("no playback controller")
	}

	bubble := newBubble(options)
	defer bubble.cancelSub()

	switch {
	case options.Autoplay != nil:
		if err := options.Autoplay(options.Controller); err != nil {
			return err
		}
		bubble.setState(statusState)
	case options.Resume:
		bubble.setState(historyState)
	default:
		bubble.setState(channelsState)
	}

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
