package game

import "github.com/vovakirdan/tui-tetris/internal/core"

// kickOffsets lists the positional offsets tried, in priority order,
// when a rotation is blocked at the piece's current pivot. These are a
// deliberate simplification of the standard rotation system: one table
// per shape class rather than per rotation pair.
var (
	kickOffsetsI = []core.Position{
		{X: 0, Y: 0}, {X: -2, Y: 0}, {X: 2, Y: 0}, {X: -2, Y: 1}, {X: 2, Y: -1},
	}
	kickOffsetsO = []core.Position{
		{X: 0, Y: 0},
	}
	kickOffsetsDefault = []core.Position{
		{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0},
		{X: 0, Y: -1}, {X: -1, Y: -1}, {X: 1, Y: -1},
	}
)

func kickOffsetsFor(shape Shape) []core.Position {
	switch shape {
	case ShapeI:
		return kickOffsetsI
	case ShapeO:
		return kickOffsetsO
	default:
		return kickOffsetsDefault
	}
}

// IsValidPosition reports whether every block of the piece lies inside
// the board and on an empty cell. Overflow above the board (negative y)
// is invalid like any other out-of-bounds position.
func IsValidPosition(piece ActivePiece, board Board) bool {
	for _, p := range piece.Blocks() {
		if !board.IsEmpty(p) {
			return false
		}
	}
	return true
}

// HasLanded reports whether the piece is valid where it is but cannot
// descend one more row. This is the sole landing test; there is no
// separate grounded flag.
func HasLanded(piece ActivePiece, board Board) bool {
	return IsValidPosition(piece, board) && !IsValidPosition(piece.Shifted(0, 1), board)
}

// HardDropPosition advances the piece downward while the advanced
// position remains valid and returns the last valid piece. Bounded by
// the board height.
func HardDropPosition(piece ActivePiece, board Board) ActivePiece {
	for {
		next := piece.Shifted(0, 1)
		if !IsValidPosition(next, board) {
			return piece
		}
		piece = next
	}
}

// TryRotate rotates the piece one step and searches the shape's kick
// offsets strictly in order for the first valid resulting position.
// Returns the rotated piece and true on success, or the piece unchanged
// and false if every offset is blocked.
func TryRotate(piece ActivePiece, board Board, clockwise bool) (ActivePiece, bool) {
	rotated := piece.Rotated(clockwise)
	for _, off := range kickOffsetsFor(piece.Shape) {
		candidate := rotated.Shifted(off.X, off.Y)
		if IsValidPosition(candidate, board) {
			return candidate, true
		}
	}
	return piece, false
}

// IsGameOver reports whether a freshly spawned piece is already blocked,
// which ends the session.
func IsGameOver(piece ActivePiece, board Board) bool {
	return !IsValidPosition(piece, board)
}
