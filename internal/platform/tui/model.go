package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/parkour/internal/core"
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/replay"
	"github.com/vovakirdan/parkour/internal/storage"
)

// PlayOptions configures a terminal play session.
type PlayOptions struct {
	// Store receives recorded runs. Nil disables recording.
	Store *storage.Store

	// Record saves every finished run as a replay.
	Record bool

	// HoldWindow is how long the jump key counts as held after the last
	// key event. Terminals do not report releases.
	HoldWindow time.Duration

	// Audio plays sound effects. Nil keeps the game's current sink.
	Audio runner.AudioSink

	// Logger receives run events. Nil discards them.
	Logger *log.Logger
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// GameModel is the Bubble Tea model that plays one runner game.
type GameModel struct {
	game       *runner.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       PlayOptions
	keyMapper  *KeyMapper
	help       help.Model
	clock      frameClock
	hold       holdTracker
	inputFrame core.InputFrame
	session    *replay.Session // Nil when runs are not recorded
	gameState  core.GameState
	lastRunID  int64
	runSaved   bool
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model and starts the first run.
func NewGameModel(game *runner.Game, cfg core.RuntimeConfig, opts PlayOptions) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		hold:       newHoldTracker(opts.HoldWindow),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	if opts.Audio != nil {
		game.SetAudioSink(opts.Audio)
	}
	if opts.Record && opts.Store != nil {
		m.session = replay.NewSession(opts.Store, game)
	}
	m.restart(cfg.Seed)
	return m
}

// playfieldHeight leaves the bottom line for key help.
func playfieldHeight(h int) int {
	if h > 2 {
		return h - 1
	}
	return h
}

// restart begins a new run with the given seed.
func (m *GameModel) restart(seed int64) {
	m.config.Seed = seed
	m.game.Reset(m.config)
	if err := m.game.Err(); err != nil {
		m.opts.Logger.Warn("config rejected, using defaults", "game", m.game.ID(), "err", err)
	}
	if m.session != nil {
		m.session.Start()
	}

	m.gameState = m.game.State()
	m.runSaved = false
	m.lastRunID = 0
	m.clock.Reset()
	m.hold.Reset()
	m.inputFrame.Clear()
	m.opts.Logger.Debug("run started", "game", m.game.ID(), "seed", seed)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionJump:
		// Auto-repeat only extends the hold
		if m.hold.Press(now) {
			m.inputFrame.Set(core.ActionJump)
		}
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick advances the simulation by the wall-clock time since the last tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}
	dt := m.clock.Next(now, m.config.TickRate)

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart(now.UnixNano())
		return m, tickCmd(m.config.TickRate)
	}

	if m.hold.Expired(now) {
		m.inputFrame.Set(core.ActionRelease)
	}

	result := m.game.Step(m.inputFrame, dt)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.finishRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finishRun logs the result and stores the replay once per run.
func (m *GameModel) finishRun() {
	m.runSaved = true
	snap := m.game.World().Snapshot()
	m.opts.Logger.Info("run ended",
		"game", m.game.ID(),
		"seed", m.game.Seed(),
		"distance", int(snap.Distance),
		"coins", snap.Coins,
		"elapsed", fmt.Sprintf("%.1fs", snap.Elapsed),
	)

	if m.session == nil {
		return
	}
	frames := m.session.Frames()
	id, err := m.session.Finish()
	if err != nil {
		m.opts.Logger.Error("could not save replay", "err", err)
		return
	}
	m.lastRunID = id
	m.opts.Logger.Debug("replay saved", "id", id, "frames", frames)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	status := m.help.View(m.keyMapper.Keys())
	if m.gameState.GameOver && m.lastRunID != 0 {
		status = fmt.Sprintf("replay #%d saved  %s", m.lastRunID, status)
	}
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(status)
}

// State returns the state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastRunID returns the stored replay ID of the last finished run, or 0.
func (m GameModel) LastRunID() int64 {
	return m.lastRunID
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for a single game.
func Run(game *runner.Game, cfg core.RuntimeConfig, opts PlayOptions) error {
	model := NewGameModel(game, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
