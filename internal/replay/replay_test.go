package replay

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
)

// playSession drives a live session the way the consumer loop does:
// record the command, apply it with a recording supply, advance the
// frame. Returns the final state and the finalized replay data.
func playSession(t *testing.T, cmds []core.Command, supply game.ShapeSupplier, params game.Params) (game.State, Data) {
	t.Helper()

	first := supply()
	second := supply()
	state := game.NewStateWithShapes(params, first, second)
	rec := NewRecorder(params, first, second)
	recording := rec.WrapSupply(supply)

	for _, cmd := range cmds {
		if state.Status == game.StatusGameOver {
			break
		}
		rec.RecordInput(cmd)
		state = game.Update(state, cmd, recording, params)
		rec.AdvanceFrame()
	}

	return state, rec.Finalize(state)
}

func seededSupply(seed int64) game.ShapeSupplier {
	rng := rand.New(rand.NewSource(seed))
	return func() game.Shape {
		return game.Shape(rng.Intn(game.ShapeCount))
	}
}

func sessionCommands(n int) []core.Command {
	// A busy mix of lateral movement, rotation, drops and a pause round
	// trip, repeated long enough to lock many pieces.
	pattern := []core.Command{
		core.CmdMoveLeft, core.CmdRotateCW, core.CmdTick, core.CmdMoveRight,
		core.CmdTick, core.CmdHardDrop, core.CmdSoftDrop, core.CmdRotateCCW,
		core.CmdTogglePause, core.CmdTick, core.CmdTogglePause, core.CmdTick,
	}
	cmds := make([]core.Command, n)
	for i := range cmds {
		cmds[i] = pattern[i%len(pattern)]
	}
	return cmds
}

func TestReplayReproducesSession(t *testing.T) {
	params := game.DefaultParams()
	live, data := playSession(t, sessionCommands(600), seededSupply(4242), params)

	final := NewPlayer(data, params).Run()

	if final.Score != live.Score {
		t.Errorf("Replayed score %d, live score %d", final.Score, live.Score)
	}
	if final.Level != live.Level {
		t.Errorf("Replayed level %d, live level %d", final.Level, live.Level)
	}
	if final.Lines != live.Lines {
		t.Errorf("Replayed lines %d, live lines %d", final.Lines, live.Lines)
	}
	if final.Status != live.Status {
		t.Errorf("Replayed status %v, live status %v", final.Status, live.Status)
	}
	if final.Active != live.Active {
		t.Errorf("Replayed active piece %+v, live %+v", final.Active, live.Active)
	}
	for y := 0; y < params.BoardHeight; y++ {
		liveRow := live.Board.RowCells(y)
		replayRow := final.Board.RowCells(y)
		for x := range liveRow {
			if liveRow[x] != replayRow[x] {
				t.Fatalf("Board mismatch at (%d,%d) after replay", x, y)
			}
		}
	}
}

func TestReplayAcrossSeeds(t *testing.T) {
	params := game.DefaultParams()
	for _, seed := range []int64{1, 7, 99, 123456} {
		live, data := playSession(t, sessionCommands(400), seededSupply(seed), params)
		final := NewPlayer(data, params).Run()

		if final.Score != live.Score || final.Lines != live.Lines || final.Level != live.Level {
			t.Errorf("Seed %d: replay diverged: score %d/%d lines %d/%d level %d/%d",
				seed, final.Score, live.Score, final.Lines, live.Lines, final.Level, live.Level)
		}
	}
}

func TestRecorderFrameNumbers(t *testing.T) {
	params := game.DefaultParams()
	rec := NewRecorder(params, game.ShapeI, game.ShapeT)

	rec.RecordInput(core.CmdMoveLeft)
	rec.AdvanceFrame()
	rec.AdvanceFrame()
	rec.RecordInput(core.CmdHardDrop)
	rec.RecordSpawn(game.ShapeZ)

	data := rec.Finalize(game.NewStateWithShapes(params, game.ShapeI, game.ShapeT))

	if len(data.Events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(data.Events))
	}
	if data.Events[0].Frame != 0 {
		t.Errorf("First event frame = %d, want 0", data.Events[0].Frame)
	}
	if data.Events[1].Frame != 2 || data.Events[2].Frame != 2 {
		t.Errorf("Lock events should share frame 2, got %d and %d",
			data.Events[1].Frame, data.Events[2].Frame)
	}
	for i := 1; i < len(data.Events); i++ {
		if data.Events[i].Frame < data.Events[i-1].Frame {
			t.Fatal("Event frames must be non-decreasing")
		}
	}
}

func TestFinalizeMetadata(t *testing.T) {
	params := game.DefaultParams()
	live, data := playSession(t, sessionCommands(120), seededSupply(5), params)

	m := data.Meta
	if m.Version != Version {
		t.Errorf("Version = %d, want %d", m.Version, Version)
	}
	if m.BoardWidth != params.BoardWidth || m.BoardHeight != params.BoardHeight {
		t.Errorf("Metadata dimensions %dx%d, want %dx%d",
			m.BoardWidth, m.BoardHeight, params.BoardWidth, params.BoardHeight)
	}
	if m.FinalScore != live.Score || m.FinalLevel != live.Level || m.FinalLines != live.Lines {
		t.Errorf("Metadata finals %d/%d/%d do not match live state %d/%d/%d",
			m.FinalScore, m.FinalLevel, m.FinalLines, live.Score, live.Level, live.Lines)
	}
	if m.StartedAt.IsZero() {
		t.Error("StartedAt not stamped")
	}
	if m.Duration < 0 {
		t.Error("Negative duration")
	}
}

func TestPlayerStopsAtGameOver(t *testing.T) {
	params := game.DefaultParams()
	// Hard-drop O pieces into the same columns until game over, then keep
	// issuing commands: the recorded tail past game over must not be
	// replayed.
	cmds := make([]core.Command, 40)
	for i := range cmds {
		cmds[i] = core.CmdHardDrop
	}
	live, data := playSession(t, cmds, func() game.Shape { return game.ShapeO }, params)

	if live.Status != game.StatusGameOver {
		t.Fatal("Session should end in game over")
	}

	p := NewPlayer(data, params)
	final := p.Run()

	if !p.Finished() {
		t.Error("Player should report finished")
	}
	if final.Status != game.StatusGameOver {
		t.Errorf("Replayed status %v, want game over", final.Status)
	}
	if final.Score != live.Score {
		t.Errorf("Replayed score %d, live %d", final.Score, live.Score)
	}
}

func TestPlayerEmptyLog(t *testing.T) {
	params := game.DefaultParams()
	rec := NewRecorder(params, game.ShapeJ, game.ShapeL)
	data := rec.Finalize(game.NewStateWithShapes(params, game.ShapeJ, game.ShapeL))

	p := NewPlayer(data, params)
	if !p.Finished() {
		t.Error("Player with no events should be finished immediately")
	}
	final := p.Run()
	if final.Score != 0 || final.Lines != 0 {
		t.Error("Empty replay should leave the initial state untouched")
	}
}
