package core

// RuntimeConfig is what a frontend tells a game on Reset: how big the
// terminal is, how often it will be stepped and which seed to use.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns; the window frontend leaves it 0
	ScreenH  int   // Terminal rows
	TickRate int   // Frontend steps per second
	Seed     int64 // Zero lets the frontend pick one from the clock
}

// DefaultTickRate is used when a frontend does not set one.
const DefaultTickRate = 60

// FrameTime returns the nominal seconds per step, used for the first frame
// and whenever the wall clock cannot be trusted.
func (c RuntimeConfig) FrameTime() float64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return 1 / float64(rate)
}

// GameState is the frontend-facing summary of a run.
type GameState struct {
	Score    int  // Whole pixels of distance
	Coins    int  // Pickups this run
	GameOver bool // A fatal collision ended the run
	Paused   bool // Stepping is suspended until the next pause toggle
}

// StepResult is returned by every Step.
type StepResult struct {
	State GameState
}
