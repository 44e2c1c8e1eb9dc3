package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/game"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// maxListedReplays caps how many replays the browser loads.
const maxListedReplays = 100

// BrowserKeyMap defines the key bindings for the replay browser.
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Watch},
		{k.Delete, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel is the Bubble Tea model for the replay browser: a table
// of stored replays from which playback can be started.
type BrowserModel struct {
	store     *storage.Store
	params    game.Params
	summaries []storage.ReplaySummary
	table     table.Model
	help      help.Model
	keys      BrowserKeyMap
	watch     *WatchModel
	loadErr   error
	width     int
	quitting  bool
}

// NewBrowserModel creates a browser over the stored replays.
func NewBrowserModel(store *storage.Store, params game.Params, width, height int) BrowserModel {
	h := help.New()
	h.ShowAll = false

	m := BrowserModel{
		store:  store,
		params: params,
		keys:   DefaultBrowserKeyMap(),
		help:   h,
		width:  width,
	}
	m.table = m.createTable(height)
	m.reload()
	return m
}

// createTable creates the replay listing table.
func (m *BrowserModel) createTable(height int) table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 18},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 6},
		{Title: "Lines", Width: 6},
		{Title: "Length", Width: 8},
	}

	tableHeight := height - 6
	if tableHeight < 3 {
		tableHeight = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload fetches the replay list and rebuilds the table rows.
func (m *BrowserModel) reload() {
	summaries, err := m.store.ListReplays(maxListedReplays)
	if err != nil {
		m.loadErr = err
		m.summaries = nil
	} else {
		m.loadErr = nil
		m.summaries = summaries
	}

	rows := make([]table.Row, len(m.summaries))
	for i, rs := range m.summaries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", rs.ID),
			rs.StartedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%d", rs.FinalScore),
			fmt.Sprintf("%d", rs.FinalLevel),
			fmt.Sprintf("%d", rs.FinalLines),
			rs.Duration.Truncate(1e9).String(),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// selectedID returns the highlighted replay's ID, or false if the list
// is empty.
func (m BrowserModel) selectedID() (int64, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.summaries) {
		return 0, false
	}
	return m.summaries[i].ID, true
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser, delegating to the watch
// model while a replay is playing.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.watch != nil {
		return m.updateWatch(msg)
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			id, ok := m.selectedID()
			if !ok {
				return m, nil
			}
			data, err := m.store.LoadReplay(id)
			if err != nil {
				m.loadErr = err
				return m, nil
			}
			watch := NewWatchModel(data, m.params)
			m.watch = &watch
			return m, watch.Init()

		case key.Matches(msg, m.keys.Delete):
			if id, ok := m.selectedID(); ok {
				if err := m.store.DeleteReplay(id); err != nil {
					m.loadErr = err
				}
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.table.SetHeight(msg.Height - 6)
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateWatch forwards messages to the embedded watch model and returns
// to the list when playback is quit.
func (m BrowserModel) updateWatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "q", "esc", "ctrl+c":
			m.watch = nil
			m.reload()
			return m, nil
		}
	}

	newModel, cmd := m.watch.Update(msg)
	if watch, ok := newModel.(WatchModel); ok {
		m.watch = &watch
	}
	return m, cmd
}

// View renders the replay list or the active playback.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}
	if m.watch != nil {
		return m.watch.View()
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("REPLAYS"))
	b.WriteString("\n\n")

	if len(m.summaries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(emptyStyle.Render("No replays recorded yet.\nFinish a game to record one."))
	} else {
		b.WriteString(m.table.View())
	}

	if m.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString("\n")
		b.WriteString(errStyle.Render(m.loadErr.Error()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunBrowser runs the replay browser in the local terminal.
func RunBrowser(store *storage.Store, params game.Params, width, height int) error {
	p := tea.NewProgram(
		NewBrowserModel(store, params, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
