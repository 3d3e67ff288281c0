package config

import "fmt"

// Variant names one of the classic engine variants, expressed as feature flags.
type Variant string

const (
	VariantClassic Variant = "classic" // Fixed-height jump, coins and boxes, no score
	VariantHold    Variant = "hold"    // Holding the button reduces gravity
	VariantCrouch  Variant = "crouch"  // Hard landings crouch briefly
	VariantScore   Variant = "score"   // Distance score on top of crouch
	VariantFull    Variant = "full"    // Everything, plus speed ramp
)

// Variants lists all variants in presentation order.
func Variants() []Variant {
	return []Variant{VariantFull, VariantClassic, VariantHold, VariantCrouch, VariantScore}
}

// Description returns a one-line summary of the variant.
func (v Variant) Description() string {
	switch v {
	case VariantClassic:
		return "fixed jump, no score"
	case VariantHold:
		return "hold to jump higher"
	case VariantCrouch:
		return "hold jump, crouch on hard landings"
	case VariantScore:
		return "crouch variant with distance score"
	case VariantFull:
		return "all features and speed ramp"
	default:
		return ""
	}
}

// ParseVariant converts a name into a Variant.
func ParseVariant(name string) (Variant, error) {
	for _, v := range Variants() {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown variant %q", ErrInvalid, name)
}

// ApplyVariant sets the feature flags of the given variant. Physics and sizes
// are left untouched.
func ApplyVariant(cfg *RunnerConfig, v Variant) {
	f := FeatureFlags{Coins: true, Obstacles: true}
	accel := 0.0

	switch v {
	case VariantClassic:
	case VariantHold:
		f.ButtonHold = true
	case VariantCrouch:
		f.ButtonHold = true
		f.Crouch = true
	case VariantScore:
		f.ButtonHold = true
		f.Crouch = true
		f.Scoring = true
	default:
		f.ButtonHold = true
		f.Crouch = true
		f.Scoring = true
		accel = cfg.Speed.Acceleration
	}

	cfg.Features = f
	cfg.Speed.Acceleration = accel
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty converts a CLI value into a preset. Empty means "use config".
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, name)
}

// ApplyDifficulty scales the speed settings for a preset.
func ApplyDifficulty(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Base *= 0.8
		cfg.Speed.Acceleration *= 0.5
	case DifficultyHard:
		cfg.Speed.Base *= 1.25
		cfg.Speed.Acceleration *= 2
	case DifficultyFixed:
		cfg.Speed.Acceleration = 0
	}
	if cfg.Speed.Max < cfg.Speed.Base {
		cfg.Speed.Max = cfg.Speed.Base
	}
}
