// Package runner implements the endless-runner simulation: an actor runs
// through a scrolling world, jumps over or lands on obstacles, collects coins
// and accumulates distance until a fatal collision ends the run.
//
// The World type is the simulation itself and has no terminal dependencies.
// Game adapts it to the registry so the frontends can drive it.
package runner

import (
	"strings"

	"github.com/vovakirdan/parkour/internal/config"
	"github.com/vovakirdan/parkour/internal/core"
	"github.com/vovakirdan/parkour/internal/registry"
)

// FrameObserver sees every simulated frame's input, in order. Replay
// recording hooks in here.
type FrameObserver interface {
	ObserveFrame(dt float64, press, release bool)
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config's own speed settings.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game adapts a World to registry.Game for one variant.
type Game struct {
	variant config.Variant
	runtime core.RuntimeConfig
	world   *World
	err     error // Last config or catalog error, the world fell back to defaults

	audio    AudioSink
	observer FrameObserver

	anim   AnimationID
	paused bool
	ticks  int // Rendered frames, drives coin and leg animation

	distance int // Last distance reported by the world
	pickups  int
}

// New creates a runner game for the given variant.
func New(v config.Variant) *Game {
	return &Game{variant: v}
}

// ID returns the registry identifier.
func (g *Game) ID() string {
	if g.variant == config.VariantFull {
		return "parkour"
	}
	return "parkour_" + string(g.variant)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.variant == config.VariantFull {
		return "Parkour"
	}
	v := string(g.variant)
	return "Parkour " + strings.ToUpper(v[:1]) + v[1:]
}

// Description summarizes the variant's mechanics.
func (g *Game) Description() string {
	return g.variant.Description()
}

// Variant returns the game's variant.
func (g *Game) Variant() config.Variant {
	return g.variant
}

// SetAudioSink sets the sink used from the next Reset on.
func (g *Game) SetAudioSink(a AudioSink) {
	g.audio = a
}

// SetFrameObserver sets the observer that sees every simulated frame.
func (g *Game) SetFrameObserver(o FrameObserver) {
	g.observer = o
}

// SetAppearance records the actor animation for rendering.
func (g *Game) SetAppearance(id AnimationID) {
	g.anim = id
}

// ReportDistance records the run's distance in pixels.
func (g *Game) ReportDistance(pixels int) {
	g.distance = pixels
}

// ReportPickup counts a collected coin.
func (g *Game) ReportPickup() {
	g.pickups++
}

// Reset loads the configuration and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.ticks = 0
	g.err = nil
	g.distance = 0
	g.pickups = 0

	cfg, err := g.loadConfig()
	if err != nil {
		g.err = err
		cfg = g.fallbackConfig()
	}

	opts := Options{
		Appearance: g,
		Audio:      g.audio,
		Score:      g,
		Seed:       runtime.Seed,
	}

	w, err := NewWorld(cfg, opts)
	if err != nil {
		g.err = err
		w, err = NewWorld(g.fallbackConfig(), opts)
		if err != nil {
			panic(err) // embedded defaults are always valid
		}
	}
	g.world = w
}

func (g *Game) loadConfig() (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyVariant(&cfg, g.variant)
	if difficultyPreset != "" {
		config.ApplyDifficulty(&cfg, difficultyPreset)
	}
	return cfg, cfg.Validate()
}

func (g *Game) fallbackConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	config.ApplyVariant(&cfg, g.variant)
	return cfg
}

// Step feeds one frame of input into the world and advances it by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	gameOver := g.world.GameOver()

	if in.Has(core.ActionPause) && !gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++

	press := in.Has(core.ActionJump)
	release := in.Has(core.ActionRelease)
	if g.observer != nil && !gameOver {
		g.observer.ObserveFrame(dt, press, release)
	}
	g.world.Apply(dt, press, release)

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.distance,
		Coins:    g.pickups,
		GameOver: g.world.GameOver(),
		Paused:   g.paused,
	}
}

// World returns the running simulation.
func (g *Game) World() *World {
	return g.world
}

// Config returns the effective configuration of the current run.
func (g *Game) Config() config.RunnerConfig {
	return g.world.Config()
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.world.Seed()
}

// Err returns the configuration error of the last Reset, if the game had to
// fall back to the built-in defaults.
func (g *Game) Err() error {
	return g.err
}

// Register every variant with the registry
func init() {
	for _, v := range config.Variants() {
		registry.Register(New(v).ID(), func() registry.Game {
			return New(v)
		})
	}
}
