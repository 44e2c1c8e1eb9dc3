// Package replay implements deterministic session recording and
// playback. A session is captured as a compact ordered event log plus
// metadata; replaying the log through the same pure state machine
// reproduces the session bit for bit.
package replay

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
)

// Version is the current replay format version tag.
const Version = 1

// EventKind discriminates the two replay event types.
type EventKind int

const (
	// KindPlayerInput is a command applied to the state machine on a
	// given frame. Auto-drop ticks are recorded like player commands so
	// playback does not depend on wall-clock timing.
	KindPlayerInput EventKind = iota
	// KindPieceSpawn records the preview shape drawn from the supply on
	// a piece lock, so playback can regenerate the piece sequence
	// without the original randomness source.
	KindPieceSpawn
)

// String returns the persisted name of the event kind.
func (k EventKind) String() string {
	switch k {
	case KindPlayerInput:
		return "PlayerInput"
	case KindPieceSpawn:
		return "PieceSpawn"
	default:
		return "Unknown"
	}
}

// Event is a single log entry, ordered by frame number. Input is set
// for KindPlayerInput, Shape for KindPieceSpawn.
type Event struct {
	Kind  EventKind
	Input core.Command
	Shape game.Shape
	Frame uint64
}

// Metadata describes a finished session. Computed once at session end.
type Metadata struct {
	Version     int
	StartedAt   time.Time
	BoardWidth  int
	BoardHeight int
	FirstShape  game.Shape
	SecondShape game.Shape
	FinalScore  int
	FinalLevel  int
	FinalLines  int
	Duration    time.Duration
}

// Data is a complete recorded session: metadata plus the ordered event
// log. Write-once; built by the Recorder, consumed by the Player and
// the persistence layer.
type Data struct {
	Meta   Metadata
	Events []Event
}
