package game

import (
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// fixedSupply returns a supplier that serves the given shapes in order,
// repeating the last one forever.
func fixedSupply(shapes ...Shape) ShapeSupplier {
	i := 0
	return func() Shape {
		s := shapes[i]
		if i < len(shapes)-1 {
			i++
		}
		return s
	}
}

func TestNewStateSpawnsFirstTwoShapes(t *testing.T) {
	params := DefaultParams()
	s := NewState(params, fixedSupply(ShapeI, ShapeT, ShapeO))

	if s.Active.Shape != ShapeI {
		t.Errorf("Active shape = %v, want I", s.Active.Shape)
	}
	if s.Next != ShapeT {
		t.Errorf("Next shape = %v, want T", s.Next)
	}
	if s.Status != StatusPlaying {
		t.Errorf("Status = %v, want playing", s.Status)
	}
	want := core.Position{X: 5, Y: 1}
	if s.Active.Pivot != want {
		t.Errorf("Spawn pivot = %v, want %v", s.Active.Pivot, want)
	}
}

func TestLateralMovesRejectSilently(t *testing.T) {
	params := DefaultParams()
	supply := fixedSupply(ShapeO, ShapeO)
	s := NewState(params, supply)

	// Push left until the wall stops it; the state must stay Playing and
	// the piece must stay valid throughout.
	for i := 0; i < params.BoardWidth+2; i++ {
		s = Update(s, core.CmdMoveLeft, supply, params)
	}
	if !IsValidPosition(s.Active, s.Board) {
		t.Fatal("Piece left the board after repeated MoveLeft")
	}
	atWall := s.Active
	s = Update(s, core.CmdMoveLeft, supply, params)
	if s.Active != atWall {
		t.Error("Blocked MoveLeft should leave the piece unchanged")
	}
}

func TestTickDescendsAndLocksAtFloor(t *testing.T) {
	// Scenario from the rules: empty 10x20 board, O piece, fixed next
	// shape T. Seventeen ticks descend, the eighteenth locks the piece at
	// the floor and spawns the T preview with the score unchanged.
	params := DefaultParams()
	supply := fixedSupply(ShapeO, ShapeT, ShapeT)
	s := NewState(params, supply)

	for i := 0; i < 17; i++ {
		s = Update(s, core.CmdTick, supply, params)
	}
	if s.Active.Shape != ShapeO {
		t.Fatal("O piece locked earlier than expected")
	}
	if s.Active.Pivot.Y != 18 {
		t.Fatalf("After 17 ticks pivot y = %d, want 18 (resting on floor)", s.Active.Pivot.Y)
	}

	s = Update(s, core.CmdTick, supply, params)

	if s.Active.Shape != ShapeT {
		t.Errorf("Expected the previewed T to spawn after lock, got %v", s.Active.Shape)
	}
	if s.Score != 0 {
		t.Errorf("Locking without clearing lines changed score to %d", s.Score)
	}
	if s.Lines != 0 {
		t.Errorf("Locking without clearing lines changed lines to %d", s.Lines)
	}
	// The O blocks must now be stamped on the floor rows.
	for _, p := range []core.Position{{X: 5, Y: 18}, {X: 6, Y: 18}, {X: 5, Y: 19}, {X: 6, Y: 19}} {
		if s.Board.IsEmpty(p) {
			t.Errorf("Expected locked block at %v", p)
		}
	}
}

func TestHardDropClearsRowWithBonus(t *testing.T) {
	// Bottom row filled except column 0; a vertical I hard-dropped into
	// the gap clears one line at level 1: base[1]*1 plus 2x drop distance.
	params := DefaultParams()
	supply := fixedSupply(ShapeT, ShapeT)

	s := NewStateWithShapes(params, ShapeI, ShapeT)
	s.Board = fillRow(s.Board, 19, 0)
	s.Active = ActivePiece{Shape: ShapeI, Pivot: core.Position{X: 0, Y: 1}, Rotation: Rot90}

	dropped := HardDropPosition(s.Active, s.Board)
	distance := dropped.Pivot.Y - s.Active.Pivot.Y

	s = Update(s, core.CmdHardDrop, supply, params)

	if s.Lines != 1 {
		t.Fatalf("Lines = %d, want 1", s.Lines)
	}
	wantScore := params.LineScores[1]*1 + 2*distance
	if s.Score != wantScore {
		t.Errorf("Score = %d, want %d (base + hard drop bonus)", s.Score, wantScore)
	}
	// The cleared row leaves the remaining I blocks above the floor.
	if s.Board.IsEmpty(core.Position{X: 0, Y: 19}) {
		t.Error("Expected leftover I block on the bottom row after the clear shift")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	params := DefaultParams()
	supply := fixedSupply(ShapeT, ShapeT)
	s := NewState(params, supply)

	before := s.Active

	s = Update(s, core.CmdTogglePause, supply, params)
	if s.Status != StatusPaused {
		t.Fatalf("Status = %v, want paused", s.Status)
	}

	// Ticks and moves are ignored while paused.
	s = Update(s, core.CmdTick, supply, params)
	s = Update(s, core.CmdMoveLeft, supply, params)
	if s.Active != before {
		t.Error("Paused state accepted a movement command")
	}

	s = Update(s, core.CmdTogglePause, supply, params)
	if s.Status != StatusPlaying {
		t.Errorf("Status after unpause = %v, want playing", s.Status)
	}
	if s.Active != before {
		t.Error("Pause round trip moved the active piece")
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	params := DefaultParams()
	supply := fixedSupply(ShapeO, ShapeO)
	s := NewState(params, supply)

	// Drop O pieces into the same columns until the spawn is blocked.
	for i := 0; i < params.BoardHeight && s.Status != StatusGameOver; i++ {
		s = Update(s, core.CmdHardDrop, supply, params)
	}
	if s.Status != StatusGameOver {
		t.Fatal("Stacking one column to the top should end the game")
	}

	frozen := s
	for _, cmd := range []core.Command{
		core.CmdMoveLeft, core.CmdTick, core.CmdHardDrop,
		core.CmdRotateCW, core.CmdTogglePause,
	} {
		s = Update(s, cmd, supply, params)
		if s.Status != StatusGameOver || s.Active != frozen.Active ||
			s.Score != frozen.Score || s.Level != frozen.Level || s.Lines != frozen.Lines {
			t.Errorf("Command %v mutated a game-over state", cmd)
		}
	}
}

func TestScoreAndLevelMonotonic(t *testing.T) {
	params := DefaultParams()
	supply := fixedSupply(ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL, ShapeI)
	s := NewState(params, supply)

	cmds := []core.Command{
		core.CmdMoveLeft, core.CmdRotateCW, core.CmdTick, core.CmdMoveRight,
		core.CmdHardDrop, core.CmdSoftDrop, core.CmdRotateCCW, core.CmdTick,
	}

	prevScore, prevLevel, prevLines := s.Score, s.Level, s.Lines
	for i := 0; i < 300 && s.Status == StatusPlaying; i++ {
		s = Update(s, cmds[i%len(cmds)], supply, params)
		if s.Score < prevScore || s.Level < prevLevel || s.Lines < prevLines {
			t.Fatalf("Monotonicity violated at step %d: score %d->%d level %d->%d lines %d->%d",
				i, prevScore, s.Score, prevLevel, s.Level, prevLines, s.Lines)
		}
		prevScore, prevLevel, prevLines = s.Score, s.Level, s.Lines
	}
}

func TestBoardDimensionsInvariant(t *testing.T) {
	params := DefaultParams()
	supply := fixedSupply(ShapeS, ShapeZ, ShapeL, ShapeJ)
	s := NewState(params, supply)

	cmds := []core.Command{
		core.CmdTick, core.CmdHardDrop, core.CmdMoveLeft,
		core.CmdRotateCW, core.CmdTogglePause, core.CmdTogglePause,
	}
	for i := 0; i < 200; i++ {
		s = Update(s, cmds[i%len(cmds)], supply, params)
		if s.Board.Width() != params.BoardWidth || s.Board.Height() != params.BoardHeight {
			t.Fatalf("Board dimensions changed at step %d: %dx%d",
				i, s.Board.Width(), s.Board.Height())
		}
	}
}
