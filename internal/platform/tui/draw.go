package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
)

// cellWidth is how many screen columns one board cell occupies. Two
// columns per cell compensates for terminal character aspect ratio.
const cellWidth = 2

// ViewOptions control the optional parts of the game view.
type ViewOptions struct {
	// ShowGhost draws the landing preview of the active piece.
	ShowGhost bool
	// HighScore is shown in the HUD when non-zero.
	HighScore int
	// Footer is a one-line hint drawn under the board, e.g. key help
	// during play or playback progress while watching a replay.
	Footer string
}

// DrawGame renders a complete game view onto the screen buffer: the
// walled board with locked cells, ghost and active piece, and a HUD
// with score, level, lines and the next-piece preview.
func DrawGame(s *core.Screen, st game.State, opts ViewOptions) {
	s.Clear()

	bw, bh := st.Board.Width(), st.Board.Height()
	boardRect := core.Rect{X: 0, Y: 0, W: bw*cellWidth + 2, H: bh + 2}
	s.DrawBox(boardRect)

	// Locked cells.
	for y := 0; y < bh; y++ {
		for x, cell := range st.Board.RowCells(y) {
			if cell.Filled {
				drawBoardCell(s, boardRect, x, y, '█', cell.Shape.Color())
			}
		}
	}

	// Ghost under the active piece, drawn first so the piece wins on
	// overlap.
	if opts.ShowGhost && st.Status == game.StatusPlaying {
		ghost := game.HardDropPosition(st.Active, st.Board)
		for _, p := range ghost.Blocks() {
			drawBoardCell(s, boardRect, p.X, p.Y, '░', core.ColorGray)
		}
	}

	if st.Status != game.StatusGameOver {
		for _, p := range st.Active.Blocks() {
			drawBoardCell(s, boardRect, p.X, p.Y, '█', st.Active.Shape.Color())
		}
	}

	drawHUD(s, st, boardRect.Right()+2, opts)

	switch st.Status {
	case game.StatusPaused:
		drawBanner(s, boardRect, " PAUSED ")
	case game.StatusGameOver:
		drawBanner(s, boardRect, " GAME OVER ")
	}

	if opts.Footer != "" {
		s.DrawTextColored(0, boardRect.Bottom(), opts.Footer, core.ColorGray)
	}
}

// drawBoardCell stamps one board cell inside the box, widening it to
// cellWidth screen columns.
func drawBoardCell(s *core.Screen, board core.Rect, x, y int, r rune, c core.Color) {
	for i := 0; i < cellWidth; i++ {
		s.SetCell(board.X+1+x*cellWidth+i, board.Y+1+y, r, c)
	}
}

// drawHUD renders the sidebar: session stats and the next-piece preview.
func drawHUD(s *core.Screen, st game.State, x int, opts ViewOptions) {
	s.DrawText(x, 1, fmt.Sprintf("Score  %d", st.Score))
	s.DrawText(x, 2, fmt.Sprintf("Level  %d", st.Level))
	s.DrawText(x, 3, fmt.Sprintf("Lines  %d", st.Lines))
	if opts.HighScore > 0 {
		s.DrawTextColored(x, 4, fmt.Sprintf("Best   %d", opts.HighScore), core.ColorGray)
	}

	s.DrawText(x, 6, "Next")
	previewBox := core.Rect{X: x, Y: 7, W: 4*cellWidth + 2, H: 4}
	s.DrawBox(previewBox)
	for _, off := range st.Next.Offsets() {
		// Offsets range over x in [-1, 2] and y in {0, 1}; shift them
		// into the preview box.
		px := previewBox.X + 1 + (off.X+1)*cellWidth
		py := previewBox.Y + 1 + off.Y
		for i := 0; i < cellWidth; i++ {
			s.SetCell(px+i, py, '█', st.Next.Color())
		}
	}
}

// drawBanner overlays a centered status banner on the board.
func drawBanner(s *core.Screen, board core.Rect, text string) {
	x := board.X + (board.W-len(text))/2
	y := board.Y + board.H/2
	s.DrawTextColored(x, y, text, core.ColorBrightWhite)
}
