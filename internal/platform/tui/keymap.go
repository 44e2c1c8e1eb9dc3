package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game commands.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game command. Returns the
// command (may be CmdNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (cmd core.Command, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d", "q":
		return core.CmdQuit, true
	}

	switch msg.String() {
	case "a", "h", "left":
		return core.CmdMoveLeft, false
	case "d", "l", "right":
		return core.CmdMoveRight, false
	case "s", "j", "down":
		return core.CmdSoftDrop, false
	case "w", "k", "x", "up":
		return core.CmdRotateCW, false
	case "z":
		return core.CmdRotateCCW, false
	case " ":
		return core.CmdHardDrop, false
	case "p", "esc":
		return core.CmdTogglePause, false
	}

	return core.CmdNone, false
}
