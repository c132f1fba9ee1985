// Package tui implements the interactive terminal interface.
package tui

type state int

const (
	channelsState state = iota
	historyState
	statusState
	errorState
)
