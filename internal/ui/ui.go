// Package ui renders short-lived notices inside the terminal interface.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zapp-cli/zapp/style"
)

// noticeFor bounds how long a notice stays visible.
const noticeFor = 3 * time.Second

// Notice is a transient message published to the interface.
type Notice string

// clearNoticeMsg expires a specific notice. The sequence number keeps an old
// expiry from wiping a newer notice.
type clearNoticeMsg struct {
	seq int
}

// Model holds the currently visible notice, if any.
type Model struct {
	notice string
	seq    int
}

// Notify returns a command that publishes a transient notice.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return Notice(text)
	}
}

// Update tracks notice publication and expiry.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case Notice:
		m.notice = string(msg)
		m.seq++
		seq := m.seq
		return tea.Tick(noticeFor, func(time.Time) tea.Msg {
			return clearNoticeMsg{seq: seq}
		})
	case clearNoticeMsg:
		if msg.seq == m.seq {
			m.notice = ""
		}
	}
	return nil
}

// View appends the active notice to the last line of the rendered content.
func (m *Model) View(content string) string {
	if m.notice == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notice)
	return strings.Join(lines, "\n")
}
