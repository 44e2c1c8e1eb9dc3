package core

import "fmt"

// Command represents a semantic game command, abstracted from physical
// key presses and timers. Producers (keyboard, auto-drop ticker) emit
// commands; the consumer loop applies them one at a time.
type Command int

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdSoftDrop
	CmdRotateCW
	CmdRotateCCW
	CmdHardDrop
	CmdTogglePause
	CmdTick // automatic one-row descent issued by the tick producer
	CmdQuit
)

// String returns a stable, human-readable name for the command.
// These names are also the persistence format for replay events.
func (c Command) String() string {
	switch c {
	case CmdNone:
		return "None"
	case CmdMoveLeft:
		return "MoveLeft"
	case CmdMoveRight:
		return "MoveRight"
	case CmdSoftDrop:
		return "SoftDrop"
	case CmdRotateCW:
		return "RotateCW"
	case CmdRotateCCW:
		return "RotateCCW"
	case CmdHardDrop:
		return "HardDrop"
	case CmdTogglePause:
		return "TogglePause"
	case CmdTick:
		return "Tick"
	case CmdQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseCommand is the inverse of String. Unknown names yield an error so
// that malformed replay data surfaces as a decode failure instead of a
// silently wrong command.
func ParseCommand(s string) (Command, error) {
	switch s {
	case "None":
		return CmdNone, nil
	case "MoveLeft":
		return CmdMoveLeft, nil
	case "MoveRight":
		return CmdMoveRight, nil
	case "SoftDrop":
		return CmdSoftDrop, nil
	case "RotateCW":
		return CmdRotateCW, nil
	case "RotateCCW":
		return CmdRotateCCW, nil
	case "HardDrop":
		return CmdHardDrop, nil
	case "TogglePause":
		return CmdTogglePause, nil
	case "Tick":
		return CmdTick, nil
	case "Quit":
		return CmdQuit, nil
	default:
		return CmdNone, fmt.Errorf("core: unknown command %q", s)
	}
}
