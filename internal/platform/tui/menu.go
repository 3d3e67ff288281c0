package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/parkour/internal/core"
	"github.com/vovakirdan/parkour/internal/registry"
)

// MenuItem represents a selectable game variant in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
)

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	hasReplays  bool
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem // Set when user selects a variant
	openReplays bool      // True if user pressed Tab for the replay browser
}

// NewMenuModel lists every registered game. hasReplays enables the replay
// browser entry.
func NewMenuModel(cfg core.RuntimeConfig, hasReplays bool) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description})
	}

	return MenuModel{
		items:      items,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		hasReplays: hasReplays,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionReplays:
		if m.hasReplays {
			m.openReplays = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("P A R K O U R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a variant", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-18s", item.Title)
		if i == m.cursor {
			line = menuCursorStyle.Render(fmt.Sprintf("> %-18s", item.Title))
		}
		line += statusStyle.Render(fmt.Sprintf(" %-36s", item.Description))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Q: Quit"
	if m.hasReplays {
		controls = "Up/Down: Navigate  |  Enter: Play  |  Tab: Replays  |  Q: Quit"
	}
	b.WriteString(centerText(statusStyle.Render(controls), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsReplays returns true if user requested the replay browser.
func (m MenuModel) WantsReplays() bool {
	return m.openReplays
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
