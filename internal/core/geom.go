// Package core provides fundamental types shared by the game engine and
// the platform layers. It contains no external dependencies (especially
// no Bubble Tea) to keep game logic pure and testable.
package core

// Position is a board-relative coordinate. X grows rightward, Y grows
// downward. It is a value type with no identity.
type Position struct {
	X, Y int
}

// Add returns the vector sum of two positions.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the vector difference of two positions.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect represents an axis-aligned rectangle used for screen layout.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Min returns the smaller of two ints.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two ints.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
