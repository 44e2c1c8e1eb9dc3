// Package tui provides the Bubble Tea integration: board rendering,
// key mapping, the interactive play and replay-watch models, the replay
// browser and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one automatic descent of the active piece.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that fires a tick after the
// given interval. The interval shrinks as the level rises, so the
// caller recomputes it on every reschedule.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
