package game

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestIsValidPositionBounds(t *testing.T) {
	b := EmptyBoard(10, 20)

	tests := []struct {
		name  string
		piece ActivePiece
		want  bool
	}{
		{"spawn position", SpawnPiece(ShapeT, 10), true},
		{"above board", ActivePiece{Shape: ShapeI, Pivot: core.Position{X: 5, Y: -1}}, false},
		{"past left wall", ActivePiece{Shape: ShapeI, Pivot: core.Position{X: 0, Y: 5}}, false},
		{"past right wall", ActivePiece{Shape: ShapeI, Pivot: core.Position{X: 8, Y: 5}}, false},
		{"below floor", ActivePiece{Shape: ShapeO, Pivot: core.Position{X: 4, Y: 19}}, false},
	}

	for _, tt := range tests {
		if got := IsValidPosition(tt.piece, b); got != tt.want {
			t.Errorf("%s: IsValidPosition = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsValidPositionOccupiedCell(t *testing.T) {
	b := EmptyBoard(10, 20)
	piece := SpawnPiece(ShapeO, 10)

	blocked := b.Place(piece.Blocks()[0], Cell{Filled: true, Shape: ShapeZ})

	if !IsValidPosition(piece, b) {
		t.Fatal("Piece should be valid on an empty board")
	}
	if IsValidPosition(piece, blocked) {
		t.Error("Piece should be invalid when a block cell is occupied")
	}
}

func TestHasLanded(t *testing.T) {
	b := EmptyBoard(10, 20)

	floating := ActivePiece{Shape: ShapeO, Pivot: core.Position{X: 4, Y: 5}}
	if HasLanded(floating, b) {
		t.Error("Floating piece should not report landed")
	}

	// O blocks span pivot rows 0..1, so pivot y=18 rests on the floor.
	resting := ActivePiece{Shape: ShapeO, Pivot: core.Position{X: 4, Y: 18}}
	if !HasLanded(resting, b) {
		t.Error("Piece on the floor should report landed")
	}
}

func TestHardDropPosition(t *testing.T) {
	b := EmptyBoard(10, 20)

	for s := ShapeI; s <= ShapeL; s++ {
		piece := SpawnPiece(s, 10)
		dropped := HardDropPosition(piece, b)

		if !HasLanded(dropped, b) {
			t.Errorf("Shape %v: hard drop result does not satisfy HasLanded", s)
		}
		if dropped.Pivot.Y < piece.Pivot.Y {
			t.Errorf("Shape %v: hard drop moved the piece upward", s)
		}
	}
}

func TestHardDropOntoStack(t *testing.T) {
	b := EmptyBoard(10, 20)
	b = fillRow(b, 19)

	piece := SpawnPiece(ShapeO, 10)
	dropped := HardDropPosition(piece, b)

	// O blocks span pivot rows 0..1; row 19 is occupied, so the piece
	// rests with its lower blocks on row 18.
	if dropped.Pivot.Y != 17 {
		t.Errorf("Expected pivot y=17 resting on the stack, got %d", dropped.Pivot.Y)
	}
}

func TestTryRotateKickOrder(t *testing.T) {
	b := EmptyBoard(10, 20)

	// Vertical I hugging the left wall. Rotating to horizontal is blocked
	// at (0,0) and at the first kick (-2,0); the second kick (2,0) is the
	// first valid offset and must win.
	piece := ActivePiece{Shape: ShapeI, Pivot: core.Position{X: 0, Y: 5}, Rotation: Rot90}
	if !IsValidPosition(piece, b) {
		t.Fatal("Setup piece should be valid")
	}

	rotated, ok := TryRotate(piece, b, true)
	if !ok {
		t.Fatal("Rotation near the wall should succeed via a kick offset")
	}
	if rotated.Pivot.X != 2 {
		t.Errorf("Expected kick to shift pivot to x=2, got x=%d", rotated.Pivot.X)
	}
	if rotated.Rotation != Rot180 {
		t.Errorf("Expected rotation state Rot180, got %v", rotated.Rotation)
	}
}

func TestTryRotateRejected(t *testing.T) {
	b := EmptyBoard(10, 20)
	// Wall in every cell the kicked rotations could reach, leaving only
	// the vertical shaft in column 0 free.
	for y := 2; y < 10; y++ {
		for x := 1; x < 10; x++ {
			b = b.Place(core.Position{X: x, Y: y}, Cell{Filled: true, Shape: ShapeJ})
		}
	}

	piece := ActivePiece{Shape: ShapeI, Pivot: core.Position{X: 0, Y: 5}, Rotation: Rot90}
	if !IsValidPosition(piece, b) {
		t.Fatal("Setup piece should be valid")
	}

	rotated, ok := TryRotate(piece, b, true)
	if ok {
		t.Fatal("Rotation inside the shaft should be rejected")
	}
	if rotated != piece {
		t.Error("Rejected rotation must leave the piece unchanged")
	}
}

func TestIsGameOver(t *testing.T) {
	b := EmptyBoard(10, 20)
	piece := SpawnPiece(ShapeT, 10)

	if IsGameOver(piece, b) {
		t.Error("Fresh spawn on an empty board should not be game over")
	}

	blocked := b.Place(piece.Blocks()[1], Cell{Filled: true, Shape: ShapeS})
	if !IsGameOver(piece, blocked) {
		t.Error("Blocked spawn should be game over")
	}
}
