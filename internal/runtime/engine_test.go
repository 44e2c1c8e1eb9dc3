package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
	"github.com/vovakirdan/tui-tetris/internal/replay"
)

// quietParams returns params whose auto-drop is effectively disabled so
// tests control every command explicitly.
func quietParams() game.Params {
	p := game.DefaultParams()
	p.BaseInterval = time.Hour
	p.MinInterval = time.Hour
	return p
}

func fixedSupply(shapes ...game.Shape) game.ShapeSupplier {
	i := 0
	return func() game.Shape {
		s := shapes[i%len(shapes)]
		i++
		return s
	}
}

// runEngine starts the engine and returns a channel with Run's result.
func runEngine(ctx context.Context, e *Engine) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Run(ctx)
	}()
	return errCh
}

func waitDone(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Engine did not stop in time")
		return nil
	}
}

func TestEngineAppliesCommandsInOrder(t *testing.T) {
	params := quietParams()
	shapes := []game.Shape{game.ShapeO, game.ShapeT, game.ShapeI, game.ShapeL, game.ShapeJ}

	e := New(Options{Params: params, Supply: fixedSupply(shapes...)})
	errCh := runEngine(context.Background(), e)

	cmds := []core.Command{
		core.CmdMoveLeft, core.CmdMoveLeft, core.CmdRotateCW,
		core.CmdTick, core.CmdHardDrop, core.CmdMoveRight, core.CmdTick,
	}
	for _, cmd := range cmds {
		if !e.Submit(cmd) {
			t.Fatal("Submit failed while engine was running")
		}
	}
	e.Submit(core.CmdQuit)
	if err := waitDone(t, errCh); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// The consumer must have produced exactly the state a sequential
	// application of the same commands produces.
	wantSupply := fixedSupply(shapes...)
	first, second := wantSupply(), wantSupply()
	want := game.NewStateWithShapes(params, first, second)
	for _, cmd := range cmds {
		want = game.Update(want, cmd, wantSupply, params)
	}

	got := e.State()
	if got.Score != want.Score || got.Lines != want.Lines || got.Active != want.Active {
		t.Errorf("Engine state diverged: got score=%d lines=%d active=%+v, want score=%d lines=%d active=%+v",
			got.Score, got.Lines, got.Active, want.Score, want.Lines, want.Active)
	}
	for y := 0; y < params.BoardHeight; y++ {
		wr := want.Board.RowCells(y)
		gr := got.Board.RowCells(y)
		for x := range wr {
			if wr[x] != gr[x] {
				t.Fatalf("Board mismatch at (%d,%d)", x, y)
			}
		}
	}
}

func TestEngineUpdatesIntervalOnLevelChange(t *testing.T) {
	params := quietParams()
	params.BoardWidth = 4
	params.LinesPerLevel = 1
	params.BaseInterval = 800 * time.Millisecond
	params.MinInterval = 100 * time.Millisecond
	params.DecreasePerLevel = 50 * time.Millisecond
	// Keep the auto-drop out of the way for the duration of the test.
	params.BaseInterval = time.Hour
	params.MinInterval = time.Minute
	params.DecreasePerLevel = 10 * time.Minute

	e := New(Options{Params: params, Supply: fixedSupply(game.ShapeO)})
	errCh := runEngine(context.Background(), e)

	before := e.Interval()

	// Two O pieces fill the bottom two rows of the 4-wide board: the
	// first drops at the spawn columns, the second is pushed to the wall.
	for _, cmd := range []core.Command{
		core.CmdHardDrop,
		core.CmdMoveLeft, core.CmdMoveLeft, core.CmdHardDrop,
	} {
		e.Submit(cmd)
	}
	e.Submit(core.CmdQuit)
	if err := waitDone(t, errCh); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if e.State().Lines != 2 {
		t.Fatalf("Expected 2 cleared lines, got %d", e.State().Lines)
	}
	after := e.Interval()
	want := game.DropInterval(e.State().Level, params)
	if after != want {
		t.Errorf("Interval after level change = %v, want %v", after, want)
	}
	if after == before {
		t.Error("Interval cell was not republished on level change")
	}
}

func TestEngineTickProducerDrivesGameOver(t *testing.T) {
	// Small board, fast ticks, no player input: the tick producer alone
	// must stack pieces until the spawn is blocked.
	params := game.DefaultParams()
	params.BoardWidth = 4
	params.BoardHeight = 6
	params.BaseInterval = 5 * time.Millisecond
	params.MinInterval = 5 * time.Millisecond

	e := New(Options{Params: params, Supply: fixedSupply(game.ShapeO)})
	errCh := runEngine(context.Background(), e)

	if err := waitDone(t, errCh); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if e.State().Status != game.StatusGameOver {
		t.Errorf("Status = %v, want game over", e.State().Status)
	}
}

func TestEngineRecordsReplayableSession(t *testing.T) {
	params := quietParams()
	shapes := []game.Shape{game.ShapeI, game.ShapeO, game.ShapeT, game.ShapeS, game.ShapeZ}

	e := New(Options{Params: params, Supply: fixedSupply(shapes...), Record: true})
	errCh := runEngine(context.Background(), e)

	for i := 0; i < 30; i++ {
		e.Submit(core.CmdHardDrop)
		e.Submit(core.CmdMoveLeft)
	}
	e.Submit(core.CmdQuit)
	waitDone(t, errCh)

	data := e.ReplayData()
	if data == nil {
		t.Fatal("Recording engine produced no replay data")
	}

	final := replay.NewPlayer(*data, params).Run()
	live := e.State()
	if final.Score != live.Score || final.Lines != live.Lines || final.Level != live.Level {
		t.Errorf("Replay diverged from live session: score %d/%d lines %d/%d level %d/%d",
			final.Score, live.Score, final.Lines, live.Lines, final.Level, live.Level)
	}
	if data.Meta.FinalScore != live.Score {
		t.Errorf("Metadata final score %d, want %d", data.Meta.FinalScore, live.Score)
	}
}

func TestSubmitAfterStopReturnsFalse(t *testing.T) {
	params := quietParams()
	e := New(Options{Params: params, Supply: fixedSupply(game.ShapeT)})
	errCh := runEngine(context.Background(), e)

	e.Submit(core.CmdQuit)
	waitDone(t, errCh)

	if e.Submit(core.CmdTick) {
		t.Error("Submit should fail after the consumer has exited")
	}
}

func TestEngineStopsOnContextCancel(t *testing.T) {
	params := quietParams()
	e := New(Options{Params: params, Supply: fixedSupply(game.ShapeT), Record: true})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runEngine(ctx, e)

	e.Submit(core.CmdMoveLeft)
	cancel()

	if err := waitDone(t, errCh); err != context.Canceled {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	// The replay must still be finalized from fully-applied commands.
	if e.ReplayData() == nil {
		t.Error("Replay data missing after cancellation")
	}
}
