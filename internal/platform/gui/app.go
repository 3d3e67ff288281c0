// Package gui is the windowed frontend. It drives the same runner game as
// the terminal, draws the world in its native pixel coordinates and reads
// real key releases, so holding the jump button works as on a controller.
package gui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/parkour/internal/core"
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/replay"
	"github.com/vovakirdan/parkour/internal/storage"
)

// MaxFrameDT caps one simulated step, e.g. after the window was dragged.
const MaxFrameDT = 0.1

// Options configures the window.
type Options struct {
	// Store receives recorded runs when Record is set.
	Store  *storage.Store
	Record bool

	// Audio plays sound effects. Nil is silent.
	Audio runner.AudioSink

	// Scale multiplies the world size to get the window size.
	Scale float64

	// ShowHitbox outlines the collision box around the actor.
	ShowHitbox bool

	Logger *log.Logger
}

// App implements ebiten.Game for one runner game.
type App struct {
	game    *runner.Game
	runtime core.RuntimeConfig
	opts    Options
	keys    keySource
	now     func() time.Time
	session *replay.Session

	last      time.Time
	ticks     int
	runSaved  bool
	lastRunID int64
}

// New creates the app and starts the first run.
func New(game *runner.Game, cfg core.RuntimeConfig, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultTickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	a := &App{
		game:    game,
		runtime: cfg,
		opts:    opts,
		keys:    ebitenKeys{},
		now:     time.Now,
	}
	if opts.Audio != nil {
		game.SetAudioSink(opts.Audio)
	}
	if opts.Record && opts.Store != nil {
		a.session = replay.NewSession(opts.Store, game)
	}
	a.restart(cfg.Seed)
	return a
}

func (a *App) restart(seed int64) {
	a.runtime.Seed = seed
	a.game.Reset(a.runtime)
	if err := a.game.Err(); err != nil {
		a.opts.Logger.Warn("config rejected, using defaults", "game", a.game.ID(), "err", err)
	}
	if a.session != nil {
		a.session.Start()
	}
	a.last = time.Time{}
	a.runSaved = false
	a.lastRunID = 0
	a.opts.Logger.Debug("run started", "game", a.game.ID(), "seed", seed)
}

// frameDT returns the wall-clock seconds since the previous Update.
func (a *App) frameDT(now time.Time) float64 {
	nominal := a.runtime.FrameTime()
	if a.last.IsZero() {
		a.last = now
		return nominal
	}
	dt := now.Sub(a.last).Seconds()
	a.last = now
	switch {
	case dt <= 0:
		return nominal
	case dt > MaxFrameDT:
		return MaxFrameDT
	}
	return dt
}

// Update advances the game by one tick.
func (a *App) Update() error {
	now := a.now()
	dt := a.frameDT(now)

	in, quit := readInput(a.keys)
	if quit {
		return ebiten.Termination
	}

	if in.Has(core.ActionRestart) && a.game.State().GameOver {
		a.restart(now.UnixNano())
		return nil
	}

	a.ticks++
	result := a.game.Step(in, dt)
	if result.State.GameOver && !a.runSaved {
		a.finishRun()
	}
	return nil
}

func (a *App) finishRun() {
	a.runSaved = true
	snap := a.game.World().Snapshot()
	a.opts.Logger.Info("run ended",
		"game", a.game.ID(),
		"seed", a.game.Seed(),
		"distance", int(snap.Distance),
		"coins", snap.Coins,
		"elapsed", fmt.Sprintf("%.1fs", snap.Elapsed),
	)
	if a.session == nil {
		return
	}
	id, err := a.session.Finish()
	if err != nil {
		a.opts.Logger.Error("could not save replay", "err", err)
		return
	}
	a.lastRunID = id
}

// Layout keeps the logical screen at world size; ebiten scales it to the window.
func (a *App) Layout(_, _ int) (int, int) {
	cfg := a.game.Config()
	return int(cfg.World.Width), int(cfg.World.Height)
}

// LastRunID returns the stored replay ID of the last finished run, or 0.
func (a *App) LastRunID() int64 {
	return a.lastRunID
}

// Run opens the window and blocks until it is closed.
func Run(game *runner.Game, cfg core.RuntimeConfig, opts Options) error {
	app := New(game, cfg, opts)
	w, h := app.Layout(0, 0)

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(int(float64(w)*app.opts.Scale), int(float64(h)*app.opts.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(app.runtime.TickRate)

	if err := ebiten.RunGame(app); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
