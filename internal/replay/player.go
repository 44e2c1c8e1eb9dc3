package replay

import (
	"github.com/vovakirdan/tui-tetris/internal/game"
)

// Player re-simulates a recorded session. It reconstructs the initial
// state from the metadata and applies events strictly in frame order:
// all events sharing a frame number are applied together before the
// next frame.
//
// PieceSpawn events feed a small FIFO of upcoming shapes; each piece
// lock during playback consumes one queued shape in place of the
// original randomness source, falling back to the state's current
// preview if the queue is empty.
type Player struct {
	data     Data
	params   game.Params
	state    game.State
	pos      int // index of the next unapplied event
	queue    []game.Shape
	finished bool
}

// NewPlayer prepares playback of the recorded session. The board
// dimensions come from the metadata; the remaining tunables come from
// the given params so scoring matches the live session's configuration.
func NewPlayer(data Data, params game.Params) *Player {
	params.BoardWidth = data.Meta.BoardWidth
	params.BoardHeight = data.Meta.BoardHeight

	return &Player{
		data:   data,
		params: params,
		state:  game.NewStateWithShapes(params, data.Meta.FirstShape, data.Meta.SecondShape),
	}
}

// State returns the current reconstructed state.
func (p *Player) State() game.State {
	return p.state
}

// Finished reports whether playback is done: all events consumed or the
// reconstructed state reached game over, whichever came first. This is
// an explicit terminal flag, not an error.
func (p *Player) Finished() bool {
	return p.finished || p.pos >= len(p.data.Events) || p.state.Status == game.StatusGameOver
}

// Frame returns the frame number of the next unapplied event, or the
// last event's frame when playback is finished.
func (p *Player) Frame() uint64 {
	if len(p.data.Events) == 0 {
		return 0
	}
	if p.pos >= len(p.data.Events) {
		return p.data.Events[len(p.data.Events)-1].Frame
	}
	return p.data.Events[p.pos].Frame
}

// StepFrame applies the next frame's events and returns the resulting
// state. Within a frame, spawn events are enqueued first so a lock
// triggered by an input event of the same frame draws the shape the
// live session drew.
func (p *Player) StepFrame() game.State {
	if p.Finished() {
		p.finished = true
		return p.state
	}

	frame := p.data.Events[p.pos].Frame
	group := p.data.Events[p.pos:]
	n := 0
	for n < len(group) && group[n].Frame == frame {
		n++
	}
	group = group[:n]
	p.pos += n

	for _, ev := range group {
		if ev.Kind == KindPieceSpawn {
			p.queue = append(p.queue, ev.Shape)
		}
	}
	for _, ev := range group {
		if ev.Kind != KindPlayerInput {
			continue
		}
		p.state = game.Update(p.state, ev.Input, p.nextShape, p.params)
		if p.state.Status == game.StatusGameOver {
			break
		}
	}

	if p.pos >= len(p.data.Events) || p.state.Status == game.StatusGameOver {
		p.finished = true
	}
	return p.state
}

// Run plays the session to completion and returns the final state.
func (p *Player) Run() game.State {
	for !p.Finished() {
		p.StepFrame()
	}
	return p.state
}

// nextShape is the supply callback for playback: it pops the FIFO fed
// by PieceSpawn events, falling back to the current preview.
func (p *Player) nextShape() game.Shape {
	if len(p.queue) > 0 {
		s := p.queue[0]
		p.queue = p.queue[1:]
		return s
	}
	return p.state.Next
}
