// Package game implements the falling-block simulation: the board and
// piece data model, collision and wall-kick resolution, line clearing
// and scoring, and the pure state machine that ties them together.
//
// All state values are immutable; every operation returns a new value
// and leaves its inputs untouched. This keeps prior states inspectable
// for rendering diffs and makes replays deterministic.
package game

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Shape identifies one of the seven tetromino kinds.
type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// ShapeCount is the number of distinct tetromino shapes.
const ShapeCount = 7

// baseOffsets lists each shape's four block offsets relative to its
// pivot at rotation 0. All offsets keep y in {0, 1} so a piece spawned
// near the top never starts above the board.
var baseOffsets = [ShapeCount][4]core.Position{
	ShapeI: {{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
	ShapeO: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	ShapeT: {{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
	ShapeS: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: 1}},
	ShapeZ: {{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	ShapeJ: {{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
	ShapeL: {{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 1}},
}

// Offsets returns the shape's canonical block offsets at rotation 0.
func (s Shape) Offsets() [4]core.Position {
	return baseOffsets[s]
}

// Valid reports whether s is one of the seven defined shapes.
func (s Shape) Valid() bool {
	return s >= ShapeI && s <= ShapeL
}

// String returns the one-letter shape name. These names are also the
// persistence format for replay events.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeJ:
		return "J"
	case ShapeL:
		return "L"
	default:
		return "?"
	}
}

// ParseShape is the inverse of String. Unknown names yield an error so
// malformed replay data surfaces as a decode failure.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "I":
		return ShapeI, nil
	case "O":
		return ShapeO, nil
	case "T":
		return ShapeT, nil
	case "S":
		return ShapeS, nil
	case "Z":
		return ShapeZ, nil
	case "J":
		return ShapeJ, nil
	case "L":
		return ShapeL, nil
	default:
		return ShapeI, fmt.Errorf("game: unknown shape %q", s)
	}
}

// Color returns the display color conventionally used for the shape.
func (s Shape) Color() core.Color {
	switch s {
	case ShapeI:
		return core.ColorCyan
	case ShapeO:
		return core.ColorYellow
	case ShapeT:
		return core.ColorMagenta
	case ShapeS:
		return core.ColorGreen
	case ShapeZ:
		return core.ColorRed
	case ShapeJ:
		return core.ColorBlue
	case ShapeL:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// Rotation is one of the four discrete rotation states.
type Rotation int

const (
	Rot0 Rotation = iota
	Rot90
	Rot180
	Rot270
)

// CW returns the next rotation state clockwise.
func (r Rotation) CW() Rotation {
	return (r + 1) % 4
}

// CCW returns the next rotation state counter-clockwise.
func (r Rotation) CCW() Rotation {
	return (r + 3) % 4
}

// apply rotates a block offset by the rotation state. With y growing
// downward, one clockwise step maps (x, y) to (-y, x).
func (r Rotation) apply(p core.Position) core.Position {
	switch r {
	case Rot90:
		return core.Position{X: -p.Y, Y: p.X}
	case Rot180:
		return core.Position{X: -p.X, Y: -p.Y}
	case Rot270:
		return core.Position{X: p.Y, Y: -p.X}
	default:
		return p
	}
}
