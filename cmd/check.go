// Package cmd implements the command-line interface for zapp.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/zapp-cli/zapp/constant"
	"github.com/zapp-cli/zapp/icon"
	"github.com/zapp-cli/zapp/key"
	"github.com/zapp-cli/zapp/style"
)

// installHints maps GOOS to the package manager invocation that installs mpv.
var installHints = map[string]string{
	constant.Darwin:  "brew install mpv",
	constant.Linux:   "sudo apt install mpv",
	constant.Windows: "scoop install mpv",
}

// CheckDependencies verifies that the configured media engine binary can
// be found before any playback command spawns it.
func CheckDependencies() {
	player := viper.GetString(key.PlayerPath)

	if _, err := exec.LookPath(player); err != nil {
		fmt.Println(missingEngineBox(player))
		os.Exit(1)
	}
}

// missingEngineBox renders the error panel shown when the player binary
// cannot be resolved.
func missingEngineBox(player string) string {
	accent := style.New().Foreground(style.AccentColor)

	lines := []string{
		style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail))),
		"",
		style.New().Foreground(style.Text).Render(fmt.Sprintf("The media engine '%s' was not found in your PATH.", player)),
	}

	if hint, ok := installHints[runtime.GOOS]; ok {
		lines = append(lines, "", "To install it, try running:", "  "+accent.Bold(true).Render(hint))
	}

	lines = append(lines,
		"",
		"A binary outside your PATH can be configured with:",
		"  "+accent.Render("zapp config set "+key.PlayerPath+" /path/to/mpv"),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
