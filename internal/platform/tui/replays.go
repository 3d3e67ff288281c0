package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/parkour/internal/registry"
	"github.com/vovakirdan/parkour/internal/replay"
	"github.com/vovakirdan/parkour/internal/storage"
)

const maxRuns = 200 // Rows loaded per filter

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Verify   key.Binding
	Delete   key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns bindings to show in the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Verify, k.Delete, k.NextGame, k.Back}
}

// FullHelp returns bindings to show in the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Verify, k.Delete},
		{k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns the default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel browses, verifies and deletes recorded runs.
type ReplaysModel struct {
	filters   []registry.GameInfo // First entry (empty ID) shows every game
	filter    int
	store     *storage.Store
	runs      []storage.RunEntry
	table     table.Model
	help      help.Model
	keys      ReplaysKeyMap
	status    string
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewReplaysModel creates a replay browser over store.
func NewReplaysModel(store *storage.Store, width, height int) ReplaysModel {
	filters := append([]registry.GameInfo{{Title: "All"}}, registry.List()...)

	m := ReplaysModel{
		filters: filters,
		store:   store,
		keys:    DefaultReplaysKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a table sized to the window.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Variant", Width: 16},
		{Title: "Distance", Width: 9},
		{Title: "Coins", Width: 6},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 13},
	}

	height := m.height - 8 // Title, tabs, status, help
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// loadRuns reloads rows for the current filter.
func (m *ReplaysModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		runs, err := m.store.ListRuns(m.filters[m.filter].ID, maxRuns)
		if err != nil {
			m.status = "load failed: " + err.Error()
		} else {
			m.runs = runs
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.GameID,
			fmt.Sprintf("%.0f", r.Distance),
			fmt.Sprintf("%d", r.Coins),
			fmt.Sprintf("%.1fs", r.Duration),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// selectedRun returns the highlighted run, if any.
func (m ReplaysModel) selectedRun() (storage.RunEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.RunEntry{}, false
	}
	return m.runs[i], true
}

// verifySelected re-simulates the highlighted run.
func (m *ReplaysModel) verifySelected() {
	run, ok := m.selectedRun()
	if !ok {
		return
	}
	rec, err := replay.Load(m.store, run.ID)
	if err != nil {
		m.status = fmt.Sprintf("#%d: %v", run.ID, err)
		return
	}
	snap, err := replay.Verify(rec)
	switch {
	case errors.Is(err, replay.ErrMismatch):
		m.status = fmt.Sprintf("#%d diverged: %v", run.ID, err)
	case err != nil:
		m.status = fmt.Sprintf("#%d: %v", run.ID, err)
	default:
		m.status = fmt.Sprintf("#%d ok: %d frames, distance %.0f, coins %d",
			run.ID, len(rec.Frames), snap.Distance, snap.Coins)
	}
}

// deleteSelected removes the highlighted run.
func (m *ReplaysModel) deleteSelected() {
	run, ok := m.selectedRun()
	if !ok {
		return
	}
	if err := m.store.DeleteRun(run.ID); err != nil {
		m.status = fmt.Sprintf("#%d: %v", run.ID, err)
		return
	}
	m.status = fmt.Sprintf("#%d deleted", run.ID)
	m.loadRuns()
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			m.filter = (m.filter + 1) % len(m.filters)
			m.status = ""
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.filter = (m.filter + len(m.filters) - 1) % len(m.filters)
			m.status = ""
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadRuns()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("RECORDED RUNS"), m.width))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, len(m.filters))
	for i, f := range m.filters {
		name := f.ID
		if name == "" {
			name = f.Title
		}
		if i == m.filter {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.filters[m.filter].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ReplaysModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlay with --record to keep replays.")
	}
	return m.table.View()
}

// Status returns the last action's message.
func (m ReplaysModel) Status() string {
	return m.status
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplaysModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplaysModel) IsQuitting() bool {
	return m.quitting
}

// RunReplays runs the replay browser as its own program.
func RunReplays(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewReplaysModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
