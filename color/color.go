// Package color names the terminal colors used outside the status view.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps a terminal color value for lipgloss.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI palette entries, normal and high-intensity. Command output uses
// these so it follows the terminal theme.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")

	HiRed    = New("9")
	HiPurple = New("13")
)

// Orange accents values that should stand out on any background.
var Orange = New("#ffb703")
