// Package config provides YAML-based runner configuration loading, variant and
// difficulty presets, and the game speed ramp.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid runner config")

// RunnerConfig contains all tunables of the runner simulation. The classic
// engine variants are presets over this one struct (see ApplyVariant).
type RunnerConfig struct {
	Physics  PhysicsConfig `yaml:"physics"`
	Actor    ActorConfig   `yaml:"actor"`
	World    WorldConfig   `yaml:"world"`
	Layers   LayersConfig  `yaml:"layers"`
	Objects  ObjectsConfig `yaml:"objects"`
	Features FeatureFlags  `yaml:"features"`
	Speed    SpeedConfig   `yaml:"speed"`
	Patterns string        `yaml:"patterns,omitempty"` // Optional pattern catalog file
}

// PhysicsConfig defines the vertical kinematics. Velocities are expressed in
// pixels per reference frame; integration scales them by dt*ReferenceFPS.
type PhysicsConfig struct {
	JumpVelocity      float64 `yaml:"jump_velocity"`
	Gravity           float64 `yaml:"gravity"`
	HoldGravityFactor float64 `yaml:"hold_gravity_factor"` // Gravity multiplier while the button is held
	CrouchThreshold   float64 `yaml:"crouch_threshold"`    // Landing velocity below this is a hard landing
	FallKickVelocity  float64 `yaml:"fall_kick_velocity"`  // Applied when falling off an edge with vy >= 0
	ReferenceFPS      float64 `yaml:"reference_fps"`
}

// ActorConfig defines the runner body.
type ActorConfig struct {
	X                float64 `yaml:"x"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	HitboxInsetLeft  float64 `yaml:"hitbox_inset_left"`
	HitboxInsetWidth float64 `yaml:"hitbox_inset_width"`
	ButtonMaxTime    float64 `yaml:"button_max_time"`   // Seconds before a held press auto-releases
	CrouchDwellTime  float64 `yaml:"crouch_dwell_time"` // Seconds spent crouching after a hard landing
}

// WorldConfig defines the visible world in pixels.
type WorldConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	GroundY          float64 `yaml:"ground_y"`
	CullMargin       float64 `yaml:"cull_margin"`
	LandingTolerance float64 `yaml:"landing_tolerance"`
}

// LayersConfig defines the parallax layer pairs.
type LayersConfig struct {
	BackgroundWidth       float64 `yaml:"background_width"`
	GroundWidth           float64 `yaml:"ground_width"`
	BackgroundSpeedFactor float64 `yaml:"background_speed_factor"`
	GroundSpeedFactor     float64 `yaml:"ground_speed_factor"`
	ScrollAfterGameOver   bool    `yaml:"scroll_after_game_over"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObjectsConfig defines world object sizes.
type ObjectsConfig struct {
	Coin  Size `yaml:"coin"`
	Box   Size `yaml:"box"`
	Anvil Size `yaml:"anvil"`
}

// FeatureFlags gate the optional parts of the state machine and world.
type FeatureFlags struct {
	Scoring    bool `yaml:"scoring"`
	Crouch     bool `yaml:"crouch"`
	ButtonHold bool `yaml:"button_hold"`
	Coins      bool `yaml:"coins"`
	Obstacles  bool `yaml:"obstacles"`
}

// SpeedConfig defines the foreground speed and how it ramps up.
type SpeedConfig struct {
	Base         float64 `yaml:"base"`         // Pixels per second at start
	Max          float64 `yaml:"max"`          // Ceiling reached by the ramp
	Acceleration float64 `yaml:"acceleration"` // Pixels per second gained each second (0 = constant)
	Curve        string  `yaml:"curve"`        // "linear", "quad_in", "quad_out", "sine_in_out"
}

// Validate checks the invariants the simulation relies on.
func (c RunnerConfig) Validate() error {
	for _, f := range c.numbers() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalid, f.name)
		}
	}

	switch {
	case c.Physics.ReferenceFPS <= 0:
		return fmt.Errorf("%w: physics.reference_fps must be positive", ErrInvalid)
	case c.Physics.JumpVelocity <= 0:
		return fmt.Errorf("%w: physics.jump_velocity must be positive", ErrInvalid)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: physics.gravity must be positive", ErrInvalid)
	case c.Actor.Width <= 0 || c.Actor.Height <= 0:
		return fmt.Errorf("%w: actor size must be positive", ErrInvalid)
	case c.Actor.HitboxInsetWidth >= c.Actor.Width:
		return fmt.Errorf("%w: actor.hitbox_inset_width leaves no hitbox", ErrInvalid)
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalid)
	case c.World.GroundY < 0 || c.World.GroundY >= c.World.Height:
		return fmt.Errorf("%w: world.ground_y must be inside the world", ErrInvalid)
	case c.Layers.BackgroundWidth <= 0 || c.Layers.GroundWidth <= 0:
		return fmt.Errorf("%w: layer widths must be positive", ErrInvalid)
	case c.Speed.Base <= 0:
		return fmt.Errorf("%w: speed.base must be positive", ErrInvalid)
	case c.Speed.Acceleration < 0:
		return fmt.Errorf("%w: speed.acceleration must not be negative", ErrInvalid)
	case c.World.LandingTolerance < 0:
		return fmt.Errorf("%w: world.landing_tolerance must not be negative", ErrInvalid)
	case c.World.CullMargin < 0:
		return fmt.Errorf("%w: world.cull_margin must not be negative", ErrInvalid)
	case c.Physics.HoldGravityFactor < 0:
		return fmt.Errorf("%w: physics.hold_gravity_factor must not be negative", ErrInvalid)
	case c.Actor.ButtonMaxTime < 0:
		return fmt.Errorf("%w: actor.button_max_time must not be negative", ErrInvalid)
	case c.Actor.CrouchDwellTime < 0:
		return fmt.Errorf("%w: actor.crouch_dwell_time must not be negative", ErrInvalid)
	}

	for name, s := range map[string]Size{"coin": c.Objects.Coin, "box": c.Objects.Box, "anvil": c.Objects.Anvil} {
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("%w: objects.%s size must be positive", ErrInvalid, name)
		}
	}

	if _, ok := easings[c.Speed.Curve]; !ok && c.Speed.Curve != "" {
		return fmt.Errorf("%w: unknown speed.curve %q", ErrInvalid, c.Speed.Curve)
	}
	return nil
}

type namedNumber struct {
	name  string
	value float64
}

func (c RunnerConfig) numbers() []namedNumber {
	return []namedNumber{
		{"physics.jump_velocity", c.Physics.JumpVelocity},
		{"physics.gravity", c.Physics.Gravity},
		{"physics.hold_gravity_factor", c.Physics.HoldGravityFactor},
		{"physics.crouch_threshold", c.Physics.CrouchThreshold},
		{"physics.fall_kick_velocity", c.Physics.FallKickVelocity},
		{"physics.reference_fps", c.Physics.ReferenceFPS},
		{"actor.x", c.Actor.X},
		{"actor.width", c.Actor.Width},
		{"actor.height", c.Actor.Height},
		{"actor.hitbox_inset_left", c.Actor.HitboxInsetLeft},
		{"actor.hitbox_inset_width", c.Actor.HitboxInsetWidth},
		{"actor.button_max_time", c.Actor.ButtonMaxTime},
		{"actor.crouch_dwell_time", c.Actor.CrouchDwellTime},
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"world.ground_y", c.World.GroundY},
		{"world.cull_margin", c.World.CullMargin},
		{"world.landing_tolerance", c.World.LandingTolerance},
		{"layers.background_width", c.Layers.BackgroundWidth},
		{"layers.ground_width", c.Layers.GroundWidth},
		{"layers.background_speed_factor", c.Layers.BackgroundSpeedFactor},
		{"layers.ground_speed_factor", c.Layers.GroundSpeedFactor},
		{"objects.coin.width", c.Objects.Coin.Width},
		{"objects.coin.height", c.Objects.Coin.Height},
		{"objects.box.width", c.Objects.Box.Width},
		{"objects.box.height", c.Objects.Box.Height},
		{"objects.anvil.width", c.Objects.Anvil.Width},
		{"objects.anvil.height", c.Objects.Anvil.Height},
		{"speed.base", c.Speed.Base},
		{"speed.max", c.Speed.Max},
		{"speed.acceleration", c.Speed.Acceleration},
	}
}
