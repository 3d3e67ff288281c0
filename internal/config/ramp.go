package config

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// easings maps curve names to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"quad_in":     ease.InQuad,
	"quad_out":    ease.OutQuad,
	"sine_in_out": ease.InOutSine,
}

// SpeedRamp drives the foreground speed from Base to Max. The ramp lasts
// (Max-Base)/Acceleration seconds, so a linear curve gains Acceleration px/s
// every second.
type SpeedRamp struct {
	cfg   SpeedConfig
	tween *gween.Tween
	speed float64
}

// NewSpeedRamp creates a ramp positioned at the base speed.
func NewSpeedRamp(cfg SpeedConfig) *SpeedRamp {
	r := &SpeedRamp{cfg: cfg}
	r.Reset()
	return r
}

// Reset rewinds the ramp to the base speed.
func (r *SpeedRamp) Reset() {
	r.speed = r.cfg.Base
	r.tween = nil

	span := r.cfg.Max - r.cfg.Base
	if r.cfg.Acceleration <= 0 || span <= 0 {
		return
	}

	fn, ok := easings[r.cfg.Curve]
	if !ok {
		fn = ease.Linear
	}
	duration := span / r.cfg.Acceleration
	r.tween = gween.New(float32(r.cfg.Base), float32(r.cfg.Max), float32(duration), fn)
}

// Speed returns the current speed in pixels per second.
func (r *SpeedRamp) Speed() float64 {
	return r.speed
}

// Advance moves the ramp forward by dt seconds and returns the new speed.
func (r *SpeedRamp) Advance(dt float64) float64 {
	if r.tween == nil || dt <= 0 {
		return r.speed
	}

	current, finished := r.tween.Update(float32(dt))
	r.speed = float64(current)
	if finished {
		r.speed = r.cfg.Max
		r.tween = nil
	}
	return r.speed
}
