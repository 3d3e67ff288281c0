// Package audio plays the runner's sound effects. Effects are synthesized on
// the fly, so no asset files are needed.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// sweep is an oscillator whose frequency glides linearly from one value to
// another over its duration, with a short fade at both ends.
type sweep struct {
	from, to float64
	wave     Wave
	rate     beep.SampleRate
	phase    float64
	pos      int
	total    int
	fade     int
}

// NewSweep returns a streamer gliding from one frequency to another.
func NewSweep(from, to float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	return &sweep{
		from:  from,
		to:    to,
		wave:  wave,
		rate:  rate,
		total: total,
		fade:  min(rate.N(5*time.Millisecond), total/2),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		t := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*t

		var val float64
		switch s.wave {
		case WaveSquare:
			val = 1
			if s.phase >= 0.5 {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(s.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * s.phase)
		}

		// Fade in and out to avoid clicks
		if s.fade > 0 {
			if s.pos < s.fade {
				val *= float64(s.pos) / float64(s.fade)
			} else if rem := s.total - s.pos; rem < s.fade {
				val *= float64(rem) / float64(s.fade)
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// newVolume scales a stream linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
