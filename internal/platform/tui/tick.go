package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/parkour/internal/core"
)

// MaxFrameDT caps a single simulated step so a stalled terminal does not
// teleport the world forward.
const MaxFrameDT = 0.1

// TickMsg is sent on each simulation tick and carries the wall-clock time.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg after the tick interval.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = core.DefaultTickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns tick timestamps into frame durations.
type frameClock struct {
	last time.Time
}

// Next returns the seconds elapsed since the previous tick. The first tick
// uses the nominal interval.
func (c *frameClock) Next(now time.Time, tickRate int) float64 {
	nominal := core.RuntimeConfig{TickRate: tickRate}.FrameTime()
	if c.last.IsZero() {
		c.last = now
		return nominal
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	switch {
	case dt <= 0:
		return nominal
	case dt > MaxFrameDT:
		return MaxFrameDT
	}
	return dt
}

// Reset forgets the previous tick, e.g. after a pause or restart.
func (c *frameClock) Reset() {
	c.last = time.Time{}
}

// holdTracker synthesizes a jump release for terminals, which only report
// key presses. The button counts as held while presses (including key
// auto-repeat) keep arriving within the window.
type holdTracker struct {
	window time.Duration
	held   bool
	last   time.Time
}

func newHoldTracker(window time.Duration) holdTracker {
	if window <= 0 {
		window = 250 * time.Millisecond
	}
	return holdTracker{window: window}
}

// Press records a jump key event and reports whether it starts a new hold.
func (h *holdTracker) Press(now time.Time) bool {
	h.last = now
	if h.held {
		return false
	}
	h.held = true
	return true
}

// Expired reports, once, that the hold window has lapsed.
func (h *holdTracker) Expired(now time.Time) bool {
	if !h.held || now.Sub(h.last) < h.window {
		return false
	}
	h.held = false
	return true
}

// Held reports whether the jump key is considered held.
func (h *holdTracker) Held() bool {
	return h.held
}

func (h *holdTracker) Reset() {
	h.held = false
	h.last = time.Time{}
}
