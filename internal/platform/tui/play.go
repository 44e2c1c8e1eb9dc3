package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// hudWidth is the sidebar width reserved next to the board.
const hudWidth = 16

// PlayOptions configure an interactive session model.
type PlayOptions struct {
	Params game.Params

	// NewSupply creates a fresh shape source per session, so a restart
	// gets a new sequence instead of repeating the previous one.
	NewSupply func() game.ShapeSupplier

	// Store receives the final score and the replay on game over.
	// May be nil, in which case results are discarded.
	Store *storage.Store

	Logger    *log.Logger
	ShowGhost bool

	// Record enables replay capture for the session.
	Record bool
}

// PlayModel is the Bubble Tea model for an interactive session. It
// drives the pure state machine from key and tick messages; the auto
// drop interval follows the current level.
type PlayModel struct {
	opts   PlayOptions
	screen *core.Screen
	keys   *KeyMapper

	state     game.State
	supply    game.ShapeSupplier
	recorder  *replay.Recorder
	highScore int
	saved     bool
	quitting  bool
}

// NewPlayModel creates a session model and spawns the first piece.
func NewPlayModel(opts PlayOptions) PlayModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	w := opts.Params.BoardWidth*cellWidth + 4 + hudWidth
	h := opts.Params.BoardHeight + 3

	m := PlayModel{
		opts:   opts,
		screen: core.NewScreen(w, h),
		keys:   NewKeyMapper(),
	}
	m.startSession()
	if opts.Store != nil {
		if high, err := opts.Store.HighScore(); err == nil {
			m.highScore = high
		}
	}
	return m
}

// startSession resets the state machine with a fresh shape sequence.
func (m *PlayModel) startSession() {
	supply := m.opts.NewSupply()
	first := supply()
	second := supply()

	m.state = game.NewStateWithShapes(m.opts.Params, first, second)
	m.supply = supply
	m.recorder = nil
	m.saved = false

	if m.opts.Record {
		rec := replay.NewRecorder(m.opts.Params, first, second)
		m.recorder = rec
		m.supply = rec.WrapSupply(supply)
	}
}

// Init starts the auto-drop timer.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(game.DropInterval(m.state.Level, m.opts.Params))
}

// Update handles messages and advances the session.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.apply(core.CmdTick)
		return m, tickCmd(game.DropInterval(m.state.Level, m.opts.Params))
	}
	return m, nil
}

// handleKey maps a key press to a command and applies it.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	if msg.String() == "r" && m.state.Status == game.StatusGameOver {
		m.startSession()
		return m, tickCmd(game.DropInterval(m.state.Level, m.opts.Params))
	}

	if cmd != core.CmdNone {
		m.apply(cmd)
	}
	return m, nil
}

// apply runs one command through the state machine, recording it and
// persisting results on game over.
func (m *PlayModel) apply(cmd core.Command) {
	if m.recorder != nil {
		m.recorder.RecordInput(cmd)
	}
	m.state = game.Update(m.state, cmd, m.supply, m.opts.Params)
	if m.recorder != nil {
		m.recorder.AdvanceFrame()
	}
	if m.state.Status == game.StatusGameOver {
		m.finish()
	}
}

// finish saves the score and replay exactly once per session.
func (m *PlayModel) finish() {
	if m.saved || m.opts.Store == nil || m.state.Score == 0 {
		m.saved = true
		return
	}
	m.saved = true

	if _, err := m.opts.Store.SaveScore(m.state.Score, m.state.Level, m.state.Lines); err != nil {
		m.opts.Logger.Warn("could not save score", "error", err)
	}
	if m.state.Score > m.highScore {
		m.highScore = m.state.Score
	}
	if m.recorder != nil {
		if _, err := m.opts.Store.SaveReplay(m.recorder.Finalize(m.state)); err != nil {
			m.opts.Logger.Warn("could not save replay", "error", err)
		}
	}
}

// View renders the board and HUD.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	footer := "move a/d  rotate w/z  drop space  pause p  quit q"
	if m.state.Status == game.StatusGameOver {
		footer = "restart r  quit q"
	}
	DrawGame(m.screen, m.state, ViewOptions{
		ShowGhost: m.opts.ShowGhost,
		HighScore: m.highScore,
		Footer:    footer,
	})
	return RenderScreen(m.screen)
}

// Score returns the current session score.
func (m PlayModel) Score() int {
	return m.state.Score
}
