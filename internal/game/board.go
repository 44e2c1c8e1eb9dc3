package game

import (
	"sort"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Cell is a single board cell: either empty or filled by a block that
// remembers which shape stamped it (for coloring).
type Cell struct {
	Filled bool
	Shape  Shape
}

// EmptyCell is the zero cell value.
var EmptyCell = Cell{}

// Board is an immutable rectangular grid of cells. Dimensions are fixed
// for the board's lifetime; every mutation returns a new Board and the
// receiver stays valid.
type Board struct {
	width  int
	height int
	cells  [][]Cell // cells[y][x], every row has exactly width cells
}

// EmptyBoard creates a board of the given dimensions with all cells empty.
func EmptyBoard(width, height int) Board {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return Board{width: width, height: height, cells: cells}
}

// Width returns the board width in cells.
func (b Board) Width() int {
	return b.width
}

// Height returns the board height in cells.
func (b Board) Height() int {
	return b.height
}

// InBounds reports whether the position lies inside the board.
func (b Board) InBounds(p core.Position) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// Get returns the cell at the position. Out-of-bounds positions read as
// an empty cell and ok == false.
func (b Board) Get(p core.Position) (Cell, bool) {
	if !b.InBounds(p) {
		return EmptyCell, false
	}
	return b.cells[p.Y][p.X], true
}

// IsEmpty reports whether the position is in bounds and unoccupied.
func (b Board) IsEmpty(p core.Position) bool {
	c, ok := b.Get(p)
	return ok && !c.Filled
}

// clone copies the cell grid so the receiver stays untouched.
func (b Board) clone() Board {
	cells := make([][]Cell, b.height)
	for y := range cells {
		cells[y] = make([]Cell, b.width)
		copy(cells[y], b.cells[y])
	}
	return Board{width: b.width, height: b.height, cells: cells}
}

// Place returns a board with the cell written at the position.
// Out-of-bounds positions are a no-op, never an error.
func (b Board) Place(p core.Position, c Cell) Board {
	if !b.InBounds(p) {
		return b
	}
	nb := b.clone()
	nb.cells[p.Y][p.X] = c
	return nb
}

// PlacePiece returns a board with all four blocks of the piece stamped
// onto it. Blocks outside the board are skipped.
func (b Board) PlacePiece(piece ActivePiece) Board {
	nb := b.clone()
	cell := Cell{Filled: true, Shape: piece.Shape}
	for _, p := range piece.Blocks() {
		if nb.InBounds(p) {
			nb.cells[p.Y][p.X] = cell
		}
	}
	return nb
}

// CompletedRows returns the indices of rows where every cell is filled,
// in ascending order.
func (b Board) CompletedRows() []int {
	var rows []int
	for y := 0; y < b.height; y++ {
		full := true
		for x := 0; x < b.width; x++ {
			if !b.cells[y][x].Filled {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRows returns a board with the given rows removed, rows above them
// shifted down and as many fresh empty rows prepended at the top. The
// order of the given indices does not matter; duplicates and
// out-of-range indices are ignored.
func (b Board) ClearRows(rows []int) Board {
	if len(rows) == 0 {
		return b
	}

	drop := make(map[int]bool, len(rows))
	for _, y := range rows {
		if y >= 0 && y < b.height {
			drop[y] = true
		}
	}
	if len(drop) == 0 {
		return b
	}

	kept := make([]int, 0, b.height-len(drop))
	for y := 0; y < b.height; y++ {
		if !drop[y] {
			kept = append(kept, y)
		}
	}
	sort.Ints(kept)

	cells := make([][]Cell, b.height)
	// Fresh empty rows at the top, surviving rows packed at the bottom
	// in their original relative order.
	for y := 0; y < len(drop); y++ {
		cells[y] = make([]Cell, b.width)
	}
	for i, src := range kept {
		row := make([]Cell, b.width)
		copy(row, b.cells[src])
		cells[len(drop)+i] = row
	}

	return Board{width: b.width, height: b.height, cells: cells}
}

// RowCells returns a copy of the row's cells for rendering.
// Out-of-range rows return an all-empty row.
func (b Board) RowCells(y int) []Cell {
	row := make([]Cell, b.width)
	if y >= 0 && y < b.height {
		copy(row, b.cells[y])
	}
	return row
}
