package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		wantCmd  core.Command
		wantQuit bool
	}{
		{"a moves left", runeKey('a'), core.CmdMoveLeft, false},
		{"h moves left", runeKey('h'), core.CmdMoveLeft, false},
		{"left arrow moves left", tea.KeyMsg{Type: tea.KeyLeft}, core.CmdMoveLeft, false},
		{"d moves right", runeKey('d'), core.CmdMoveRight, false},
		{"right arrow moves right", tea.KeyMsg{Type: tea.KeyRight}, core.CmdMoveRight, false},
		{"s soft drops", runeKey('s'), core.CmdSoftDrop, false},
		{"down arrow soft drops", tea.KeyMsg{Type: tea.KeyDown}, core.CmdSoftDrop, false},
		{"w rotates clockwise", runeKey('w'), core.CmdRotateCW, false},
		{"up arrow rotates clockwise", tea.KeyMsg{Type: tea.KeyUp}, core.CmdRotateCW, false},
		{"z rotates counterclockwise", runeKey('z'), core.CmdRotateCCW, false},
		{"space hard drops", runeKey(' '), core.CmdHardDrop, false},
		{"p toggles pause", runeKey('p'), core.CmdTogglePause, false},
		{"esc toggles pause", tea.KeyMsg{Type: tea.KeyEsc}, core.CmdTogglePause, false},
		{"q quits", runeKey('q'), core.CmdQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.CmdQuit, true},
		{"unbound key does nothing", runeKey('m'), core.CmdNone, false},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		cmd, isQuit := km.MapKey(tt.msg)
		if cmd != tt.wantCmd || isQuit != tt.wantQuit {
			t.Errorf("%s: MapKey = (%v, %v), want (%v, %v)",
				tt.name, cmd, isQuit, tt.wantCmd, tt.wantQuit)
		}
	}
}
