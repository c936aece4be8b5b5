// Package tui provides the Bubble Tea integration for the microgame player.
// It handles the terminal UI loop, pointer mapping, and the game picker.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to drive the player clock. Session is the player session
// the tick was scheduled for; ticks from an abandoned session are dropped.
type TickMsg struct {
	Session uint64
	Time    time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after a frame
// interval at the specified rate.
func tickCmd(frameRate int, session uint64) tea.Cmd {
	interval := time.Second / time.Duration(max(frameRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Session: session, Time: t}
	})
}
