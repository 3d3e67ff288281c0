package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/parkour/internal/games/runner"
)

// Effect durations
const (
	JumpDuration   = 120 * time.Millisecond
	PickupDuration = 180 * time.Millisecond
	CrashDuration  = 350 * time.Millisecond
)

// NewEffect builds the streamer for a sound effect at the given volume
// (0..1). Unknown effects return nil.
func NewEffect(id runner.EffectID, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch id {
	case runner.EffectJump:
		s = NewSweep(320, 720, JumpDuration, WaveSquare, rate)
		volume *= 0.35
	case runner.EffectPickup:
		s = beep.Seq(
			NewSweep(988, 988, PickupDuration/3, WaveSine, rate),
			NewSweep(1319, 1319, PickupDuration-PickupDuration/3, WaveSine, rate),
		)
		volume *= 0.5
	case runner.EffectCrash:
		s = NewSweep(420, 60, CrashDuration, WaveTriangle, rate)
		volume *= 0.6
	default:
		return nil
	}
	return newVolume(s, volume)
}
