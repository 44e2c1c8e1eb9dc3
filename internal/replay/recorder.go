package replay

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
)

// Recorder accumulates the event log of a live session. The frame
// counter advances under caller control, once per consumed loop
// command; events carry whatever frame they occurred on.
//
// The Recorder is not safe for concurrent use. The consumer loop is its
// only writer, which matches the engine's single-consumer design.
type Recorder struct {
	startedAt   time.Time
	boardWidth  int
	boardHeight int
	firstShape  game.Shape
	secondShape game.Shape

	events []Event
	frame  uint64
}

// NewRecorder starts recording a session that begins with the given
// board dimensions and the first two supplied shapes.
func NewRecorder(params game.Params, first, second game.Shape) *Recorder {
	return &Recorder{
		startedAt:   time.Now(),
		boardWidth:  params.BoardWidth,
		boardHeight: params.BoardHeight,
		firstShape:  first,
		secondShape: second,
	}
}

// RecordInput appends a PlayerInput event for a command applied to the
// state machine on the current frame.
func (r *Recorder) RecordInput(cmd core.Command) {
	r.events = append(r.events, Event{
		Kind:  KindPlayerInput,
		Input: cmd,
		Frame: r.frame,
	})
}

// RecordSpawn appends a PieceSpawn event for the preview shape drawn on
// a piece lock, on the current frame.
func (r *Recorder) RecordSpawn(shape game.Shape) {
	r.events = append(r.events, Event{
		Kind:  KindPieceSpawn,
		Shape: shape,
		Frame: r.frame,
	})
}

// WrapSupply returns a supply callback that records every drawn shape
// as a PieceSpawn event before handing it to the state machine. The
// supply is only invoked on piece locks, so wrapping it captures
// exactly the spawn events playback needs.
func (r *Recorder) WrapSupply(supply game.ShapeSupplier) game.ShapeSupplier {
	return func() game.Shape {
		s := supply()
		r.RecordSpawn(s)
		return s
	}
}

// AdvanceFrame moves the recorder to the next frame.
func (r *Recorder) AdvanceFrame() {
	r.frame++
}

// Frame returns the current frame number.
func (r *Recorder) Frame() uint64 {
	return r.frame
}

// EventCount returns the number of recorded events so far.
func (r *Recorder) EventCount() int {
	return len(r.events)
}

// Finalize closes the session and produces the immutable replay data,
// stamping the end-of-session metadata from the final state.
func (r *Recorder) Finalize(final game.State) Data {
	events := make([]Event, len(r.events))
	copy(events, r.events)

	return Data{
		Meta: Metadata{
			Version:     Version,
			StartedAt:   r.startedAt,
			BoardWidth:  r.boardWidth,
			BoardHeight: r.boardHeight,
			FirstShape:  r.firstShape,
			SecondShape: r.secondShape,
			FinalScore:  final.Score,
			FinalLevel:  final.Level,
			FinalLines:  final.Lines,
			Duration:    time.Since(r.startedAt),
		},
		Events: events,
	}
}
