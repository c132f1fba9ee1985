// Package tui implements the interactive terminal interface.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init arms the playback state feed and loads the lists the interface
// starts on. The channel picker is always filled since every other state
// can navigate back to it.
func (b *statefulBubble) Init() tea.Cmd {
	cmds := []tea.Cmd{b.waitForUpdate(), b.loadChannels()}

	if b.state == historyState {
		historyCmd, err := b.loadHistory()
		if err != nil {
			b.raiseError(err)
			return tea.Batch(cmds...)
		}
		cmds = append(cmds, historyCmd)
	}

	if b.state == statusState {
		cmds = append(cmds, b.spinnerC.Tick)
	}

	return tea.Batch(cmds...)
}
