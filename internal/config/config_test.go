package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := ParseRunner(DefaultYAML())
	if err != nil {
		t.Fatalf("ParseRunner(default) failed: %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("embedded YAML differs from DefaultRunnerConfig:\n got %+v\nwant %+v", cfg, DefaultRunnerConfig())
	}
}

func TestParseRunnerOverlay(t *testing.T) {
	data := []byte("physics:\n  gravity: 3.0\nspeed:\n  base: 300\n")

	cfg, err := ParseRunner(data)
	if err != nil {
		t.Fatalf("ParseRunner failed: %v", err)
	}
	if cfg.Physics.Gravity != 3.0 {
		t.Errorf("Gravity = %f, expected 3.0", cfg.Physics.Gravity)
	}
	if cfg.Speed.Base != 300 {
		t.Errorf("Speed.Base = %f, expected 300", cfg.Speed.Base)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.JumpVelocity != 4.5 {
		t.Errorf("JumpVelocity = %f, expected default 4.5", cfg.Physics.JumpVelocity)
	}
}

func TestParseRunnerInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero reference fps", "physics:\n  reference_fps: 0\n"},
		{"ground outside world", "world:\n  ground_y: 500\n"},
		{"hitbox fully inset", "actor:\n  hitbox_inset_width: 80\n"},
		{"unknown curve", "speed:\n  curve: bouncy\n"},
		{"zero coin size", "objects:\n  coin: {width: 0, height: 10}\n"},
		{"nan gravity", "physics:\n  gravity: .nan\n"},
		{"infinite reference fps", "physics:\n  reference_fps: .inf\n"},
		{"infinite max speed", "speed:\n  max: .inf\n"},
		{"nan landing tolerance", "world:\n  landing_tolerance: .nan\n"},
		{"negative button max time", "actor:\n  button_max_time: -0.1\n"},
		{"negative crouch dwell time", "actor:\n  crouch_dwell_time: -1\n"},
		{"negative hold gravity factor", "physics:\n  hold_gravity_factor: -0.5\n"},
		{"negative cull margin", "world:\n  cull_margin: -10\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRunner([]byte(tc.data))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("world:\n  ground_y: 40\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner failed: %v", err)
	}
	if cfg.World.GroundY != 40 {
		t.Errorf("GroundY = %f, expected 40", cfg.World.GroundY)
	}

	if _, err := LoadRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadRunner should fail for a missing custom path")
	}
}

func TestApplyVariant(t *testing.T) {
	tests := []struct {
		variant  Variant
		expected FeatureFlags
		accel    float64
	}{
		{VariantClassic, FeatureFlags{Coins: true, Obstacles: true}, 0},
		{VariantHold, FeatureFlags{ButtonHold: true, Coins: true, Obstacles: true}, 0},
		{VariantCrouch, FeatureFlags{ButtonHold: true, Crouch: true, Coins: true, Obstacles: true}, 0},
		{VariantScore, FeatureFlags{Scoring: true, ButtonHold: true, Crouch: true, Coins: true, Obstacles: true}, 0},
		{VariantFull, FeatureFlags{Scoring: true, ButtonHold: true, Crouch: true, Coins: true, Obstacles: true}, 2},
	}

	for _, tc := range tests {
		t.Run(string(tc.variant), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyVariant(&cfg, tc.variant)
			if cfg.Features != tc.expected {
				t.Errorf("Features = %+v, expected %+v", cfg.Features, tc.expected)
			}
			if cfg.Speed.Acceleration != tc.accel {
				t.Errorf("Acceleration = %f, expected %f", cfg.Speed.Acceleration, tc.accel)
			}
		})
	}

	if _, err := ParseVariant("turbo"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseVariant(turbo) should fail with ErrInvalid, got %v", err)
	}
}

func TestApplyDifficulty(t *testing.T) {
	cfg := DefaultRunnerConfig()
	ApplyDifficulty(&cfg, DifficultyFixed)
	if cfg.Speed.Acceleration != 0 {
		t.Errorf("fixed preset should stop acceleration, got %f", cfg.Speed.Acceleration)
	}

	cfg = DefaultRunnerConfig()
	ApplyDifficulty(&cfg, DifficultyHard)
	if cfg.Speed.Base != 312.5 || cfg.Speed.Acceleration != 4 {
		t.Errorf("hard preset = base %f accel %f", cfg.Speed.Base, cfg.Speed.Acceleration)
	}

	if _, err := ParseDifficulty("insane"); err == nil {
		t.Error("ParseDifficulty(insane) should fail")
	}
}

func TestSpeedRampLinear(t *testing.T) {
	r := NewSpeedRamp(SpeedConfig{Base: 250, Max: 600, Acceleration: 2, Curve: "linear"})

	for i := 0; i < 60; i++ {
		r.Advance(1.0 / 60)
	}
	if math.Abs(r.Speed()-252) > 0.01 {
		t.Errorf("after 1s speed = %f, expected ~252", r.Speed())
	}

	// Run well past the ramp duration; speed settles on Max
	r.Advance(1000)
	if r.Speed() != 600 {
		t.Errorf("ramp should end at max, got %f", r.Speed())
	}

	r.Reset()
	if r.Speed() != 250 {
		t.Errorf("Reset should return to base, got %f", r.Speed())
	}
}

func TestSpeedRampConstant(t *testing.T) {
	r := NewSpeedRamp(SpeedConfig{Base: 250, Max: 600, Acceleration: 0})
	for i := 0; i < 100; i++ {
		if got := r.Advance(0.1); got != 250 {
			t.Fatalf("constant ramp changed speed to %f", got)
		}
	}
}
