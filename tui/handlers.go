// Package tui implements the interactive terminal interface.
package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/zapp-cli/zapp/history"
	"github.com/zapp-cli/zapp/internal/ui"
	"github.com/zapp-cli/zapp/log"
	"github.com/zapp-cli/zapp/media"
	"github.com/zapp-cli/zapp/playback"
	"github.com/zapp-cli/zapp/recent"
	"github.com/zapp-cli/zapp/util"
)

// seekStep matches the jump of the desktop media keys.
const seekStep = 15 * time.Second

// sleepPresets is the cycle of sleep timer durations, off excluded.
var sleepPresets = []time.Duration{
	15 * time.Minute,
	30 * time.Minute,
	60 * time.Minute,
	90 * time.Minute,
}

// waitForUpdate delivers the next playback snapshot. The update handler
// re-arms it after every delivery.
func (b *statefulBubble) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		st, ok := <-b.updates
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

// loadChannels fills the picker, most watched channels first.
func (b *statefulBubble) loadChannels() tea.Cmd {
	channels := recent.Ranked(media.Channels())

	items := make([]list.Item, len(channels))
	for i, channel := range channels {
		items[i] = &listItem{internal: channel}
	}

	return b.channelsC.SetItems(items)
}

// loadHistory fills the saved positions list, most recent first.
func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	saved, err := history.Get()
	if err != nil {
		return nil, err
	}

	records := lo.Values(saved)
	sort.Slice(records, func(i, j int) bool {
		return records[i].SavedAt.After(records[j].SavedAt)
	})

	items := make([]list.Item, len(records))
	for i, record := range records {
		items[i] = &listItem{internal: record}
	}

	return b.historyC.SetItems(items), nil
}

// playChannel starts a live session for the channel and records the watch.
func (b *statefulBubble) playChannel(channel *media.Channel) tea.Cmd {
	return func() tea.Msg {
		if err := recent.Remember(channel); err != nil {
			log.Warnf("recording channel watch: %v", err)
		}

		if err := b.controller.LoadLiveStream(channel, mo.None[media.Quality]()); err != nil {
			return err
		}
		return nil
	}
}

// resumeShow restarts an on-demand session from its saved position.
func (b *statefulBubble) resumeShow(record *history.SavedPosition) tea.Cmd {
	return func() tea.Msg {
		log.Infof("resuming %q at %s", record.Title, record.Position)

		err := b.controller.LoadShow(record.Show(), playback.ShowOptions{
			StartAt: record.Position,
		})
		if err != nil {
			return err
		}
		return nil
	}
}

// seekBy jumps relative to the current position when the session is seekable.
func (b *statefulBubble) seekBy(offset time.Duration) {
	if b.playback.Seekable.IsAbsent() {
		return
	}

	b.controller.Seek(b.playback.Position + offset)
}

// switchQuality reloads the session at the requested tier.
func (b *statefulBubble) switchQuality(quality media.Quality) tea.Cmd {
	if !lo.Contains(b.playback.AvailableQualities, quality) {
		return ui.Notify(fmt.Sprintf("%s quality not available", quality))
	}
	if quality == b.playback.Quality {
		return nil
	}

	if err := b.controller.ChangeQuality(quality); err != nil {
		return func() tea.Msg { return err }
	}

	return ui.Notify(fmt.Sprintf("switching to %s quality", quality))
}

// cycleSleepTimer advances through the sleep presets and back to off.
func (b *statefulBubble) cycleSleepTimer() tea.Cmd {
	b.sleepPreset = (b.sleepPreset + 1) % (len(sleepPresets) + 1)

	if b.sleepPreset == 0 {
		b.controller.CancelSleepTimer()
		return ui.Notify("sleep timer off")
	}

	preset := sleepPresets[b.sleepPreset-1]
	b.controller.StartSleepTimer(preset)
	return ui.Notify("sleep timer set to " + util.FormatDuration(preset))
}
