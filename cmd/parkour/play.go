package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/parkour/internal/audio"
	"github.com/vovakirdan/parkour/internal/config"
	"github.com/vovakirdan/parkour/internal/core"
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/platform/gui"
	"github.com/vovakirdan/parkour/internal/platform/tui"
	"github.com/vovakirdan/parkour/internal/registry"
	"github.com/vovakirdan/parkour/internal/settings"
	"github.com/vovakirdan/parkour/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagGUI        bool
	flagRecord     bool
	flagNoSound    bool
	flagHoldWindow time.Duration
	flagHitbox     bool
	flagScale      float64
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant, or pick one from a menu.

Controls:
  Space/Up/W - Jump (hold for a higher jump)
  P          - Pause
  R          - Restart (after game over)
  Esc        - Back to menu (when paused or over)
  Q/Ctrl+C   - Quit

Terminals do not report key releases, so the jump counts as held while key
auto-repeat keeps arriving within --hold-window. The --gui window reports
real releases.

Difficulty options:
  easy   - Slower start and ramp
  normal - Config speeds
  hard   - Faster start and ramp
  fixed  - No speed ramp

Examples:
  parkour play
  parkour play hold
  parkour play full --difficulty hard --record
  parkour play --gui --hitbox
  parkour play classic --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed (default from settings)")
	playCmd.Flags().BoolVar(&flagGUI, "gui", false, "Play in a window instead of the terminal")
	playCmd.Flags().BoolVar(&flagRecord, "record", false, "Save every finished run as a replay")
	playCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Disable sound effects")
	playCmd.Flags().DurationVar(&flagHoldWindow, "hold-window", 0, "Terminal jump hold window (default from settings)")
	playCmd.Flags().BoolVar(&flagHitbox, "hitbox", false, "Outline the actor's hitbox (window only)")
	playCmd.Flags().Float64Var(&flagScale, "scale", 2, "Window scale factor")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while the terminal UI runs")
}

// loadSettings returns the saved preferences, falling back to defaults.
func loadSettings() *settings.Manager {
	m, err := settings.Open()
	if err != nil {
		logger.Warn("could not load settings, using defaults", "err", err)
	}
	return m
}

// resolveGame creates the game for a registry ID or a variant name.
func resolveGame(name string) (*runner.Game, error) {
	id := name
	if !registry.Exists(id) {
		v, err := config.ParseVariant(name)
		if err != nil {
			return nil, fmt.Errorf("unknown game %q, run 'parkour list' to see variants", name)
		}
		id = runner.New(v).ID()
	}

	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	game, ok := g.(*runner.Game)
	if !ok {
		return nil, fmt.Errorf("game %q is not a runner", id)
	}
	return game, nil
}

// applyGameFlags configures the runner package before any game is reset.
func applyGameFlags(prefs settings.Settings) error {
	difficulty := prefs.Difficulty
	if flagDifficulty != "" {
		difficulty = flagDifficulty
	}
	if _, err := config.ParseDifficulty(difficulty); err != nil {
		return err
	}
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(difficulty)
	return nil
}

// openStore opens the runs database when recording; failures only disable it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be recorded", "err", err)
		return nil
	}
	return store
}

// newAudio initializes the speaker, or returns nil when sound is off.
func newAudio(prefs settings.Settings) *audio.BeepSink {
	if flagNoSound || !prefs.SoundEnabled {
		return nil
	}
	sink := audio.NewBeepSink(prefs.Volume)
	if err := sink.Init(); err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
		return nil
	}
	return sink
}

func runPlay(_ *cobra.Command, args []string) error {
	prefs := loadSettings().Settings()
	if err := applyGameFlags(prefs); err != nil {
		return err
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	if name == "" && flagGUI {
		name = prefs.Variant
	}

	var game *runner.Game
	if name != "" {
		g, err := resolveGame(name)
		if err != nil {
			return err
		}
		game = g
	}

	// The menu also browses replays, so it always gets the store
	var store *storage.Store
	if flagRecord || (game == nil && !flagGUI) {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	var sink runner.AudioSink
	if beeper := newAudio(prefs); beeper != nil {
		defer beeper.Close()
		sink = beeper
	}

	if flagGUI {
		cfg := core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed}
		return gui.Run(game, cfg, gui.Options{
			Store:      store,
			Record:     flagRecord,
			Audio:      sink,
			Scale:      flagScale,
			ShowHitbox: flagHitbox,
			Logger:     logger,
		})
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	hold := flagHoldWindow
	if hold <= 0 {
		hold = time.Duration(prefs.HoldWindow * float64(time.Second))
	}

	// Log lines would tear the alternate screen
	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	opts := tui.PlayOptions{
		Store:      store,
		Record:     flagRecord,
		HoldWindow: hold,
		Audio:      sink,
		Logger:     logger,
	}
	if game == nil {
		return tui.RunSession(cfg, opts)
	}
	return tui.Run(game, cfg, opts)
}

// redirectLogs sends the logger to --log-file, or discards it, until restore
// is called.
func redirectLogs() (restore func(), err error) {
	var out io.Writer = io.Discard
	var file *os.File
	if flagLogFile != "" {
		file, err = os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = file
	}
	logger.SetOutput(out)
	return func() {
		logger.SetOutput(os.Stderr)
		if file != nil {
			file.Close()
		}
	}, nil
}
