// Package style composes the lipgloss styles used across the interface.
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zapp-cli/zapp/color"
)

// New returns an empty style to build on.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored returns a style with the given foreground and background.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a render func that applies a foreground color.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

// Render funcs for the common text attributes.
var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Tag returns a render func that wraps a string in a padded color block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}

// Title renders the heading of the status view.
var Title = Tag(color.New("230"), color.New("62"))

// ErrorTitle renders the heading of the failure view.
var ErrorTitle = Tag(color.New("230"), color.Red)
