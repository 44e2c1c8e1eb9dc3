package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
	"github.com/vovakirdan/tui-tetris/internal/replay"
)

// watchInterval is the base frame pacing for replay playback. The live
// session's real timing is not recorded, so playback runs at a fixed
// cadence adjustable with the speed keys.
const watchInterval = 120 * time.Millisecond

// playbackSpeeds are the selectable playback multipliers.
var playbackSpeeds = []int{1, 2, 4, 8}

// WatchModel is the Bubble Tea model for replay playback. It steps a
// replay.Player one frame at a time on a timer, with pause and speed
// controls.
type WatchModel struct {
	player   *replay.Player
	meta     replay.Metadata
	screen   *core.Screen
	state    game.State
	speed    int // index into playbackSpeeds
	paused   bool
	done     bool
	quitting bool
}

// NewWatchModel prepares playback of a recorded session.
func NewWatchModel(data replay.Data, params game.Params) WatchModel {
	player := replay.NewPlayer(data, params)

	w := data.Meta.BoardWidth*cellWidth + 4 + hudWidth
	h := data.Meta.BoardHeight + 3

	return WatchModel{
		player: player,
		meta:   data.Meta,
		screen: core.NewScreen(w, h),
		state:  player.State(),
	}
}

// Init starts the playback timer.
func (m WatchModel) Init() tea.Cmd {
	return m.tick()
}

func (m WatchModel) tick() tea.Cmd {
	return tickCmd(watchInterval / time.Duration(playbackSpeeds[m.speed]))
}

// Update handles playback control and frame stepping.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
			if !m.paused && !m.done {
				return m, m.tick()
			}
			return m, nil
		case "+", "=":
			if m.speed < len(playbackSpeeds)-1 {
				m.speed++
			}
			return m, nil
		case "-":
			if m.speed > 0 {
				m.speed--
			}
			return m, nil
		case "right", "n":
			// Single-step while paused.
			if m.paused && !m.done {
				m.step()
			}
			return m, nil
		}

	case TickMsg:
		if m.paused || m.done || m.quitting {
			return m, nil
		}
		m.step()
		if m.done {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances playback by one frame.
func (m *WatchModel) step() {
	m.state = m.player.StepFrame()
	if m.player.Finished() {
		m.done = true
	}
}

// View renders the reconstructed state with playback status.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	status := fmt.Sprintf("frame %d  speed %dx", m.player.Frame(), playbackSpeeds[m.speed])
	switch {
	case m.done:
		status = fmt.Sprintf("replay finished  final score %d  quit q", m.meta.FinalScore)
	case m.paused:
		status += "  [paused: step right, resume space]"
	default:
		status += "  pause space  speed +/-  quit q"
	}

	DrawGame(m.screen, m.state, ViewOptions{Footer: status})
	return RenderScreen(m.screen)
}

// Finished reports whether the replay has been played to the end.
func (m WatchModel) Finished() bool {
	return m.done
}

// RunWatch plays back a replay interactively in the local terminal.
func RunWatch(data replay.Data, params game.Params) error {
	p := tea.NewProgram(NewWatchModel(data, params), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
