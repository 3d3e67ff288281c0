package runner

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/parkour/internal/config"
)

// Options wires the world to its collaborators. Nil fields get no-op
// implementations; a nil Patterns uses the configured catalog file or the
// built-in catalog.
type Options struct {
	Appearance Appearance
	Audio      AudioSink
	Score      ScoreSink
	Patterns   PatternSource
	Seed       int64

	// OnGameOver is called once when a run ends.
	OnGameOver func(Snapshot)
}

// World owns every simulation component and advances them in a fixed order
// once per frame.
type World struct {
	cfg  config.RunnerConfig
	opts Options

	catalog  *Catalog // Set when the world built its own pattern source
	patterns PatternSource

	scroll   *ScrollPlane
	actor    *ActorController
	field    *ObstacleField
	score    *ScoreTracker
	resolver *CollisionResolver
	ramp     *config.SpeedRamp

	seed    int64
	frame   int
	elapsed float64
	last    Resolution
}

// NewWorld validates cfg and builds a world ready for its first frame.
func NewWorld(cfg config.RunnerConfig, opts Options) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &World{cfg: cfg, opts: opts, patterns: opts.Patterns}
	if w.patterns == nil {
		rng := rand.New(rand.NewSource(opts.Seed))
		if cfg.Patterns != "" {
			c, err := LoadCatalogFile(cfg.Patterns, rng)
			if err != nil {
				return nil, fmt.Errorf("runner: %w", err)
			}
			w.catalog = c
		} else {
			w.catalog = BuiltinCatalog(rng)
		}
		w.patterns = w.catalog
	}

	w.build(opts.Seed)
	return w, nil
}

func (w *World) build(seed int64) {
	w.seed = seed
	w.frame = 0
	w.elapsed = 0
	w.last = Resolution{}

	if w.catalog != nil {
		w.catalog.Reseed(seed)
	}

	l := w.cfg.Layers
	w.scroll = NewScrollPlane(l.BackgroundWidth, l.BackgroundSpeedFactor, l.GroundWidth, l.GroundSpeedFactor)
	w.actor = NewActorController(w.cfg, w.opts.Appearance, w.opts.Audio)
	w.score = NewScoreTracker(w.cfg.Features.Scoring, w.opts.Score)
	w.resolver = NewCollisionResolver(w.cfg.World.GroundY, w.cfg.World.LandingTolerance, w.opts.Audio, w.score)
	w.field = NewObstacleField(w.cfg, w.patterns)
	w.ramp = config.NewSpeedRamp(w.cfg.Speed)
}

// Reset restarts the level with a new seed. An injected pattern source keeps
// its own random state.
func (w *World) Reset(seed int64) {
	w.build(seed)
}

// Press forwards a jump button press. It takes effect on the next Update.
func (w *World) Press() {
	w.actor.Press()
}

// Release forwards a jump button release.
func (w *World) Release() {
	w.actor.Release()
}

// Apply feeds one frame of input and advances the world. A press and a
// release in the same frame count as a tap: the jump still fires, with the
// button already up.
func (w *World) Apply(dt float64, press, release bool) {
	if press {
		w.Press()
	}
	if release {
		w.Release()
	}
	w.Update(dt)
}

// Update advances the simulation by dt seconds. Non-positive dt is a no-op.
func (w *World) Update(dt float64) {
	if !(dt > 0) {
		return
	}

	speed := w.ramp.Speed()
	over := w.actor.Mode() == ModeGameOver

	if !over || w.cfg.Layers.ScrollAfterGameOver {
		w.scroll.Advance(dt, speed)
	}
	if over {
		return
	}

	w.frame++
	w.elapsed += dt

	w.actor.Step(dt)
	w.field.Advance(dt, speed)
	w.score.Accumulate(dt, speed)
	w.last = w.resolver.Resolve(w.actor, w.field)
	w.ramp.Advance(dt)

	if w.last.Fatal && w.opts.OnGameOver != nil {
		w.opts.OnGameOver(w.Snapshot())
	}
}

// GameOver reports whether the run has ended.
func (w *World) GameOver() bool {
	return w.actor.Mode() == ModeGameOver
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.RunnerConfig {
	return w.cfg
}

// Seed returns the seed of the current run.
func (w *World) Seed() int64 {
	return w.seed
}

// Actor returns the actor controller.
func (w *World) Actor() *ActorController {
	return w.actor
}

// Field returns the obstacle field.
func (w *World) Field() *ObstacleField {
	return w.field
}

// Scroll returns the scroll plane.
func (w *World) Scroll() *ScrollPlane {
	return w.scroll
}

// Score returns the score tracker.
func (w *World) Score() *ScoreTracker {
	return w.score
}

// Speed returns the current foreground speed in pixels per second.
func (w *World) Speed() float64 {
	return w.ramp.Speed()
}

// LastResolution returns the result of the latest collision pass.
func (w *World) LastResolution() Resolution {
	return w.last
}

// Frame returns the number of simulated frames since the last reset.
func (w *World) Frame() int {
	return w.frame
}

// Elapsed returns the simulated time since the last reset in seconds.
func (w *World) Elapsed() float64 {
	return w.elapsed
}
