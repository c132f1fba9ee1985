package style

import "github.com/charmbracelet/lipgloss"

// Interface palette. The hue values follow the Catppuccin Mocha scheme;
// the rest of the code goes through the semantic names where one fits.
var (
	Base = lipgloss.Color("#1e1e2e")
	Text = lipgloss.Color("#cdd6f4")

	Mauve  = lipgloss.Color("#cba6f7")
	Red    = lipgloss.Color("#f38ba8")
	Yellow = lipgloss.Color("#f9e2af")

	AccentColor = Mauve
	ErrorColor  = Red
	HiRed       = Red
)
