// Package tui implements the interactive terminal interface.
package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zapp-cli/zapp/history"
	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/open"
	"github.com/zapp-cli/zapp/playback"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Ephemeral notices piggyback on every message.
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = tea.Batch(cmd, uiCmd)
	}

	switch msg := msg.(type) {
	case stateMsg:
		b.playback = playback.State(msg)
		return b, tea.Batch(cmd, b.waitForUpdate())
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit), bubblesKey.Matches(msg, b.keymap.quit):
			b.controller.Cleanup()
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			switch b.state {
			case channelsState:
				return b, cmd
			case statusState:
				b.controller.Cleanup()
			}

			b.previousState()
			return b, cmd
		}
	}

	switch b.state {
	case channelsState:
		return b.updateChannels(msg)
	case historyState:
		return b.updateHistory(msg)
	case statusState:
		return b.updateStatus(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, cmd
}

func (b *statefulBubble) updateChannels(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.channelsC.Items()); n > 0 && b.channelsC.Index() == 0 {
				b.channelsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.channelsC.Items()); n > 0 && b.channelsC.Index() == n-1 {
				b.channelsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.channelsC.SelectedItem() == nil {
				break
			}
			channel := b.channelsC.SelectedItem().(*listItem).internal.(*media.Channel)
			if err := open.Start(channel.Website); err != nil {
				b.raiseError(err)
			}
		case bubblesKey.Matches(msg, b.keymap.historyView):
			historyCmd, err := b.loadHistory()
			if err != nil {
				b.raiseError(err)
				return b, nil
			}
			b.newState(historyState)
			return b, historyCmd
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.channelsC.SelectedItem() == nil {
				break
			}
			channel := b.channelsC.SelectedItem().(*listItem).internal.(*media.Channel)
			b.newState(statusState)
			return b, tea.Batch(b.playChannel(channel), b.spinnerC.Tick)
		}
	}

	b.channelsC, cmd = b.channelsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == 0 {
				b.historyC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == n-1 {
				b.historyC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.remove):
			if b.historyC.SelectedItem() == nil {
				break
			}
			record := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedPosition)
			if err := history.Remove(record); err != nil {
				b.raiseError(err)
				return b, nil
			}

			historyCmd, err := b.loadHistory()
			if err != nil {
				b.raiseError(err)
				return b, nil
			}
			return b, historyCmd
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.historyC.SelectedItem() == nil {
				break
			}
			record := b.historyC.SelectedItem().(*listItem).internal.(*history.SavedPosition)
			b.newState(statusState)
			return b, tea.Batch(b.resumeShow(record), b.spinnerC.Tick)
		}
	}

	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateStatus(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.playPause):
			b.controller.TogglePlayPause()
		case bubblesKey.Matches(msg, b.keymap.seekBack):
			b.seekBy(-seekStep)
		case bubblesKey.Matches(msg, b.keymap.seekForward):
			b.seekBy(seekStep)
		case bubblesKey.Matches(msg, b.keymap.qualityLow):
			return b, b.switchQuality(media.QualityLow)
		case bubblesKey.Matches(msg, b.keymap.qualityMedium):
			return b, b.switchQuality(media.QualityMedium)
		case bubblesKey.Matches(msg, b.keymap.qualityHigh):
			return b, b.switchQuality(media.QualityHigh)
		case bubblesKey.Matches(msg, b.keymap.sleep):
			return b, b.cycleSleepTimer()
		case bubblesKey.Matches(msg, b.keymap.retry):
			if b.playback.Err.IsPresent() {
				b.controller.RetryLastLoad()
			}
		case bubblesKey.Matches(msg, b.keymap.dismiss):
			if b.playback.Err.IsPresent() {
				b.controller.DismissPlaybackError()
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if live, ok := b.playback.Source.(media.Live); ok {
				if err := open.Start(live.Channel.Website); err != nil {
					b.raiseError(err)
				}
			}
		}
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	return b, nil
}
