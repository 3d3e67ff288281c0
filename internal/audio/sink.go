package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/parkour/internal/games/runner"
)

const sampleRate = beep.SampleRate(44100)

// BeepSink plays effects through the system speaker. Effects are mixed on
// the speaker's goroutine; PlayEffect only queues them.
type BeepSink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewBeepSink creates a sink with the given volume (0..1). Call Init before
// use; until then effects are dropped.
func NewBeepSink(volume float64) *BeepSink {
	return &BeepSink{
		mixer:  &beep.Mixer{},
		volume: clampVolume(volume),
	}
}

// Init opens the audio device.
func (b *BeepSink) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// PlayEffect queues an effect. It never blocks on playback.
func (b *BeepSink) PlayEffect(id runner.EffectID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || b.volume <= 0 {
		return
	}

	s := NewEffect(id, sampleRate, b.volume)
	if s == nil {
		return
	}

	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// SetVolume changes the volume of subsequent effects.
func (b *BeepSink) SetVolume(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = clampVolume(v)
}

// Volume returns the current volume.
func (b *BeepSink) Volume() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.volume
}

// Close silences all playing effects.
func (b *BeepSink) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

// Nop discards every effect. Used for headless runs and SSH sessions.
type Nop struct{}

// PlayEffect does nothing.
func (Nop) PlayEffect(runner.EffectID) {}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
