// Package runtime implements the real-time game loop: two producer
// tasks (keyboard, auto-drop ticker) feeding a bounded command queue,
// and a single consumer that applies commands to the pure state machine
// one at a time. All game-state mutation happens inside the consumer,
// which is what prevents races between simultaneous key input and a
// concurrent auto-drop tick.
package runtime

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
	"github.com/vovakirdan/tui-tetris/internal/replay"
)

// DefaultQueueSize bounds the command queue. A full queue blocks the
// producer rather than dropping input.
const DefaultQueueSize = 64

// Options configures an Engine.
type Options struct {
	Params    game.Params
	Supply    game.ShapeSupplier
	QueueSize int              // 0 means DefaultQueueSize
	Record    bool             // capture a replay of the session
	Render    func(game.State) // called after every processed command; may be nil
	Logger    *log.Logger      // may be nil
}

// Engine owns the command queue and the game state. The state is only
// touched by the consumer loop; producers submit commands and read the
// shared drop interval, nothing else.
type Engine struct {
	params game.Params
	supply game.ShapeSupplier
	render func(game.State)
	logger *log.Logger

	queue    chan core.Command
	interval atomic.Int64 // drop interval in nanoseconds
	done     chan struct{}

	recorder *replay.Recorder

	// Written by the consumer before done is closed, read after.
	state      game.State
	replayData *replay.Data
}

// New creates an engine with the initial state spawned from the supply.
func New(opts Options) *Engine {
	size := opts.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	first := opts.Supply()
	second := opts.Supply()
	state := game.NewStateWithShapes(opts.Params, first, second)

	e := &Engine{
		params: opts.Params,
		supply: opts.Supply,
		render: opts.Render,
		logger: logger,
		queue:  make(chan core.Command, size),
		done:   make(chan struct{}),
		state:  state,
	}
	if opts.Record {
		e.recorder = replay.NewRecorder(opts.Params, first, second)
		e.supply = e.recorder.WrapSupply(opts.Supply)
	}
	e.interval.Store(int64(game.DropInterval(state.Level, opts.Params)))
	return e
}

// Submit pushes a command into the queue, blocking while the queue is
// full. Returns false if the engine has already stopped.
func (e *Engine) Submit(cmd core.Command) bool {
	select {
	case <-e.done:
		return false
	case e.queue <- cmd:
		return true
	}
}

// Interval returns the current auto-drop interval. The tick producer
// reads it before every sleep, so a level change takes effect on the
// next tick.
func (e *Engine) Interval() time.Duration {
	return time.Duration(e.interval.Load())
}

// State returns the last fully-applied state. Safe to call after Run
// has returned; during the run it belongs to the consumer.
func (e *Engine) State() game.State {
	return e.state
}

// ReplayData returns the finalized session replay, or nil when the
// engine was not recording.
func (e *Engine) ReplayData() *replay.Data {
	return e.replayData
}

// Done is closed when the consumer loop has exited.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Run executes the consumer loop until a Quit command, game over, or
// context cancellation. It starts the tick producer itself; the
// keyboard producer is external and submits through Submit. On return
// the final state and replay data reflect only fully-applied commands.
func (e *Engine) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer e.finish()

	go e.tickLoop(ctx)

	if e.render != nil {
		e.render(e.state)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-e.queue:
			if cmd == core.CmdQuit {
				e.logger.Debug("quit command received", "frame", e.frame())
				return nil
			}
			e.apply(cmd)
			if e.state.Status == game.StatusGameOver {
				e.logger.Info("game over",
					"score", e.state.Score, "level", e.state.Level, "lines", e.state.Lines)
				return nil
			}
		}
	}
}

// apply processes exactly one command: record, update, republish the
// drop interval on level change, advance the frame, render.
func (e *Engine) apply(cmd core.Command) {
	if e.recorder != nil {
		e.recorder.RecordInput(cmd)
	}

	prevLevel := e.state.Level
	e.state = game.Update(e.state, cmd, e.supply, e.params)

	if e.state.Level != prevLevel {
		next := game.DropInterval(e.state.Level, e.params)
		e.interval.Store(int64(next))
		e.logger.Debug("level up", "level", e.state.Level, "interval", next)
	}

	if e.recorder != nil {
		e.recorder.AdvanceFrame()
	}
	if e.render != nil {
		e.render(e.state)
	}
}

// finish finalizes the replay and releases producers blocked in Submit.
func (e *Engine) finish() {
	if e.recorder != nil {
		data := e.recorder.Finalize(e.state)
		e.replayData = &data
	}
	close(e.done)
}

// tickLoop is the tick producer: sleep for the shared interval, then
// push one Tick command. It stops when the context is cancelled.
func (e *Engine) tickLoop(ctx context.Context) {
	timer := time.NewTimer(e.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		select {
		case <-ctx.Done():
			return
		case e.queue <- core.CmdTick:
		}

		timer.Reset(e.Interval())
	}
}

func (e *Engine) frame() uint64 {
	if e.recorder == nil {
		return 0
	}
	return e.recorder.Frame()
}
