// Package tui provides the Bubble Tea integration: the play screen, the
// rewards ledger view and the SSH server that hosts one game per connection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick. Gen identifies the tick chain that
// scheduled it; ticks from a cancelled chain are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd schedules the next tick of chain gen at the given rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
