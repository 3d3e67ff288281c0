package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration: the full variant
// with the classic constants (250 px/s, jump 4.5, gravity 2.5, 0.4s hold cap).
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: PhysicsConfig{
			JumpVelocity:      4.5,
			Gravity:           2.5,
			HoldGravityFactor: 0.01,
			CrouchThreshold:   -8,
			FallKickVelocity:  -3,
			ReferenceFPS:      60,
		},
		Actor: ActorConfig{
			X:                30,
			Width:            80,
			Height:           80,
			HitboxInsetLeft:  30,
			HitboxInsetWidth: 50,
			ButtonMaxTime:    0.4,
			CrouchDwellTime:  0.15,
		},
		World: WorldConfig{
			Width:            480,
			Height:           320,
			GroundY:          60,
			CullMargin:       50,
			LandingTolerance: 0,
		},
		Layers: LayersConfig{
			BackgroundWidth:       480,
			GroundWidth:           480,
			BackgroundSpeedFactor: 0.1,
			GroundSpeedFactor:     1.0,
		},
		Objects: ObjectsConfig{
			Coin:  Size{Width: 28, Height: 28},
			Box:   Size{Width: 56, Height: 44},
			Anvil: Size{Width: 56, Height: 44},
		},
		Features: FeatureFlags{
			Scoring:    true,
			Crouch:     true,
			ButtonHold: true,
			Coins:      true,
			Obstacles:  true,
		},
		Speed: SpeedConfig{
			Base:         250,
			Max:          600,
			Acceleration: 2,
			Curve:        "linear",
		},
	}
}

// DefaultYAML returns the embedded default runner YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
