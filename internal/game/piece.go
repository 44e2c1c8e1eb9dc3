package game

import "github.com/vovakirdan/tui-tetris/internal/core"

// ActivePiece is the currently falling piece: a shape, a pivot position
// on the board and a rotation state. It is a value type; movement and
// rotation return new pieces.
type ActivePiece struct {
	Shape    Shape
	Pivot    core.Position
	Rotation Rotation
}

// SpawnPiece places a fresh piece of the shape at the canonical spawn
// position: pivot centered horizontally near the top, rotation 0.
func SpawnPiece(shape Shape, boardWidth int) ActivePiece {
	return ActivePiece{
		Shape:    shape,
		Pivot:    core.Position{X: boardWidth / 2, Y: 1},
		Rotation: Rot0,
	}
}

// Blocks returns the absolute board positions of the piece's four
// blocks. The result is recomputed on every call, never cached.
// The O piece is rotation-invariant: all four rotation states produce
// the same geometry.
func (p ActivePiece) Blocks() [4]core.Position {
	offsets := p.Shape.Offsets()
	var blocks [4]core.Position
	for i, off := range offsets {
		if p.Shape != ShapeO {
			off = p.Rotation.apply(off)
		}
		blocks[i] = p.Pivot.Add(off)
	}
	return blocks
}

// Shifted returns the piece translated by (dx, dy).
func (p ActivePiece) Shifted(dx, dy int) ActivePiece {
	p.Pivot = p.Pivot.Add(core.Position{X: dx, Y: dy})
	return p
}

// Rotated returns the piece rotated one step clockwise or
// counter-clockwise, without any validity check.
func (p ActivePiece) Rotated(clockwise bool) ActivePiece {
	if clockwise {
		p.Rotation = p.Rotation.CW()
	} else {
		p.Rotation = p.Rotation.CCW()
	}
	return p
}
