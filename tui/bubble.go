// Package tui implements the interactive terminal interface.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/zapp-cli/zapp/internal/ui"
	"github.com/zapp-cli/zapp/playback"
	"github.com/zapp-cli/zapp/style"
	"github.com/zapp-cli/zapp/util"
)

// statefulBubble holds the interface state: component models, the workflow
// position, and the latest playback snapshot.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	channelsC list.Model
	historyC  list.Model
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	controller *playback.Controller
	updates    <-chan playback.State
	cancelSub  func()

	// playback is the latest published snapshot.
	playback playback.State

	// sleepPreset indexes the sleep timer cycle, zero meaning off.
	sleepPreset int

	lastError error

	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError dispatches a terminal interface error and switches to the
// failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState transitions the workflow and its keymap together.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to a target state, recording the predecessor in the
// navigation history when it is a place worth returning to.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{statusState, errorState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the immediate predecessor from the navigation
// history, falling back to the channel picker.
func (b *statefulBubble) previousState() {
	if prev, ok := b.statesHistory.Pop(); ok {
		b.setState(prev)
		return
	}

	b.setState(channelsState)
}

// resize propagates terminal dimension changes to the child components.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.channelsC.SetSize(listWidth, listHeight)
	b.channelsC.Help.Width = listWidth

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.progressC.Width = min(listWidth, 40)
	b.helpC.Width = listWidth

	b.width = width - x
	b.height = height - y
}

// newBubble initializes the interface model and subscribes it to the
// playback state feed.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		controller:    options.Controller,
		notifier:      &ui.Model{},
		options:       options,
	}

	bubble.updates, bubble.cancelSub = options.Controller.Updates()

	makeList := func(title string, titleBackground lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().
			Foreground(style.Base).
			Background(titleBackground).
			Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.progressC = progress.New(progress.WithDefaultGradient())

	bubble.channelsC = makeList("Channels", style.AccentColor)
	bubble.channelsC.SetStatusBarItemName("channel", "channels")

	bubble.historyC = makeList("Saved Positions", style.Yellow)
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}

// stateMsg delivers a playback snapshot into the interface loop.
type stateMsg playback.State
