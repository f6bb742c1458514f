// Package tui is the Bubble Tea front end of waterdrop. It maps keys and
// mouse clicks to round actions, drives the round's clock from a tick loop
// and draws the round into a core.Screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the round by one frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameDuration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDuration is the virtual time a single tick advances the round by.
func frameDuration(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}
