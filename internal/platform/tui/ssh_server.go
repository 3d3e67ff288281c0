// Package tui provides the terminal frontend: the play model, the variant
// menu, the replay browser and SSH serving via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/parkour/internal/audio"
	"github.com/vovakirdan/parkour/internal/core"
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/registry"
	"github.com/vovakirdan/parkour/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.parkour/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database. Empty disables recording.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the per-session simulation clock in Hz.
	TickRate int

	// HoldWindow is the synthesized jump hold for remote terminals.
	HoldWindow time.Duration

	// Record stores every finished run as a replay.
	Record bool
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.parkour/runs.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		HoldWindow:  250 * time.Millisecond,
		Record:      true,
	}
}

// SSHServer wraps a Wish SSH server that hands every session its own runner.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "parkour-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			// Sessions still play, they just are not recorded
			logger.Warn("could not open runs database", "error", err)
		} else {
			srv.store = store
		}
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".parkour", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if srv.store != nil {
			srv.store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}
	opts := PlayOptions{
		Store:      s.store,
		Record:     s.config.Record,
		HoldWindow: s.config.HoldWindow,
		Audio:      audio.Nop{},
		Logger:     s.logger.With("user", sshSession.User()),
	}

	return NewSessionModel(cfg, opts), []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenReplays
)

// SessionModel manages the full session flow: menu -> game or replays -> menu.
// It is the top-level model for SSH sessions and menu-driven local play.
type SessionModel struct {
	config   core.RuntimeConfig
	opts     PlayOptions
	screen   sessionScreen
	menu     MenuModel
	game     *GameModel
	replays  *ReplaysModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts PlayOptions) SessionModel {
	return SessionModel{
		config: cfg,
		opts:   opts,
		menu:   NewMenuModel(cfg, opts.Store != nil),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenReplays:
		return m.updateReplays(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsReplays() {
		replays := NewReplaysModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.replays = &replays
		m.screen = screenReplays
		return m, m.replays.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		created, err := registry.Create(selected.GameID)
		if err != nil {
			// The menu only lists registered games
			return m, nil
		}
		game, ok := created.(*runner.Game)
		if !ok {
			return m, nil
		}

		cfg := m.config
		cfg.Seed = time.Now().UnixNano()
		gameModel := NewGameModel(game, cfg, m.opts)
		m.game = &gameModel
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateReplays handles updates when browsing replays.
func (m SessionModel) updateReplays(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.replays.Update(msg)
	if replays, ok := newModel.(ReplaysModel); ok {
		m.replays = &replays
	}

	if m.replays.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.replays.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.replays = nil
	m.menu = NewMenuModel(m.config, m.opts.Store != nil)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenReplays:
		return m.replays.View()
	}
	return m.menu.View()
}

// RunSession starts the menu-driven session locally.
func RunSession(cfg core.RuntimeConfig, opts PlayOptions) error {
	p := tea.NewProgram(NewSessionModel(cfg, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
