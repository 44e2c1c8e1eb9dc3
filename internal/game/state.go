package game

import "github.com/vovakirdan/tui-tetris/internal/core"

// Status is the top-level lifecycle state of a session.
type Status int

const (
	StatusPlaying Status = iota
	StatusPaused
	StatusGameOver
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// ShapeSupplier provides the next preview shape. It is the sole
// nondeterminism boundary: live play injects a seeded RNG, tests inject
// fixed sequences and replay playback injects a recorded queue.
type ShapeSupplier func() Shape

// State is a complete game state. It is a value: Update returns a new
// State and never mutates its input, so prior states stay valid.
type State struct {
	Board  Board
	Active ActivePiece
	Next   Shape
	Score  int
	Level  int
	Lines  int
	Status Status
}

// NewState creates the initial state for a session: an empty board, the
// first piece spawned and the second drawn as preview.
func NewState(params Params, supply ShapeSupplier) State {
	first := supply()
	second := supply()
	return NewStateWithShapes(params, first, second)
}

// NewStateWithShapes creates the initial state with explicit first and
// second shapes. Replay playback uses this to rebuild a session from
// recorded metadata.
func NewStateWithShapes(params Params, first, second Shape) State {
	board := EmptyBoard(params.BoardWidth, params.BoardHeight)
	return State{
		Board:  board,
		Active: SpawnPiece(first, board.Width()),
		Next:   second,
		Level:  params.StartLevel,
		Status: StatusPlaying,
	}
}

// Update is the state machine: it applies one command to a state and
// returns the resulting state. It is a pure function over its explicit
// arguments; all nondeterminism enters through the supply callback.
//
// Invalid moves and rotations are silently rejected. A failed descent
// locks the piece. Quit is handled by the surrounding loop, not here.
func Update(s State, cmd core.Command, supply ShapeSupplier, params Params) State {
	if s.Status == StatusGameOver {
		// Terminal state: no input resurrects it.
		return s
	}
	if s.Status == StatusPaused {
		if cmd == core.CmdTogglePause {
			s.Status = StatusPlaying
		}
		return s
	}

	switch cmd {
	case core.CmdMoveLeft:
		return tryShift(s, -1)
	case core.CmdMoveRight:
		return tryShift(s, 1)
	case core.CmdSoftDrop, core.CmdTick:
		return descend(s, supply, params)
	case core.CmdRotateCW:
		return tryRotate(s, true)
	case core.CmdRotateCCW:
		return tryRotate(s, false)
	case core.CmdHardDrop:
		return hardDrop(s, supply, params)
	case core.CmdTogglePause:
		s.Status = StatusPaused
		return s
	default:
		// Quit and None are no-ops at this layer.
		return s
	}
}

// tryShift attempts a lateral move, keeping the state unchanged when the
// target position is blocked.
func tryShift(s State, dx int) State {
	moved := s.Active.Shifted(dx, 0)
	if IsValidPosition(moved, s.Board) {
		s.Active = moved
	}
	return s
}

// tryRotate delegates to the wall-kick resolver; rejection leaves the
// state unchanged.
func tryRotate(s State, clockwise bool) State {
	rotated, ok := TryRotate(s.Active, s.Board, clockwise)
	if ok {
		s.Active = rotated
	}
	return s
}

// descend moves the piece one row down. A blocked descent is not a
// rejection: it triggers locking.
func descend(s State, supply ShapeSupplier, params Params) State {
	moved := s.Active.Shifted(0, 1)
	if IsValidPosition(moved, s.Board) {
		s.Active = moved
		return s
	}
	return lock(s, s.Active, supply, params)
}

// hardDrop moves the piece to its lowest valid position, awards twice
// the distance as bonus score and locks immediately.
func hardDrop(s State, supply ShapeSupplier, params Params) State {
	dropped := HardDropPosition(s.Active, s.Board)
	s.Score += 2 * (dropped.Pivot.Y - s.Active.Pivot.Y)
	return lock(s, dropped, supply, params)
}

// lock stamps the piece onto the board, clears lines, applies score and
// level, then spawns the previewed piece and draws a new preview. If
// the spawn is immediately blocked the session ends, with the lock's
// score and lines still applied.
func lock(s State, piece ActivePiece, supply ShapeSupplier, params Params) State {
	board := s.Board.PlacePiece(piece)
	res := ClearLines(board, s.Level, params)

	s.Board = res.Board
	s.Score += res.ScoreGained
	s.Lines += res.LinesCleared
	s.Level = CalculateLevel(s.Lines, params)

	spawned := SpawnPiece(s.Next, s.Board.Width())
	s.Active = spawned
	s.Next = supply()
	if IsGameOver(spawned, s.Board) {
		s.Status = StatusGameOver
	}
	return s
}
