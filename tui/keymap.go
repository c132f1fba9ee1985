// Package tui implements the interactive terminal interface.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/zapp-cli/zapp/color"
	"github.com/zapp-cli/zapp/style"
)

// statefulKeymap defines the keyboard interactions available in each state.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	confirm,
	back,
	up, down, left, right,
	top, bottom,
	openURL,
	remove,
	historyView,
	playPause,
	seekBack, seekForward,
	qualityLow, qualityMedium, qualityHigh,
	sleep,
	retry, dismiss,
	showHelp key.Binding
}

// setState updates the active keymap to match the application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play")),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open website"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		historyView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "saved positions"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "-15s"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "+15s"),
		),
		qualityLow: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "low quality"),
		),
		qualityMedium: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "medium quality"),
		),
		qualityHigh: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "high quality"),
		),
		sleep: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sleep timer"),
		),
		retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss error"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case channelsState:
		return h(k.confirm, k.historyView, k.openURL),
			h(k.confirm, k.historyView, k.openURL, k.quit)
	case historyState:
		return to2(h(k.confirm, k.remove, k.back))
	case statusState:
		return h(k.playPause, k.seekBack, k.seekForward, k.sleep, k.back),
			h(k.playPause, k.seekBack, k.seekForward,
				k.qualityLow, k.qualityMedium, k.qualityHigh,
				k.sleep, k.retry, k.dismiss, k.openURL, k.back, k.quit)
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:      k.up,
		CursorDown:    k.down,
		NextPage:      k.right,
		PrevPage:      k.left,
		GoToStart:     k.top,
		GoToEnd:       k.bottom,
		ShowFullHelp:  k.showHelp,
		CloseFullHelp: k.showHelp,
		Quit:          k.quit,
		ForceQuit:     k.forceQuit,
	}
}
