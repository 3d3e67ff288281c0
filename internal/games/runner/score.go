package runner

// ScoreTracker accumulates distance and counts pickups.
type ScoreTracker struct {
	enabled  bool
	distance float64
	pickups  int
	sink     ScoreSink
}

// NewScoreTracker creates a tracker. When scoring is disabled distance stays
// at zero; pickups are always counted.
func NewScoreTracker(enabled bool, sink ScoreSink) *ScoreTracker {
	if sink == nil {
		sink = nopScore{}
	}
	return &ScoreTracker{enabled: enabled, sink: sink}
}

// Accumulate adds dt*speed pixels and reports the total.
func (s *ScoreTracker) Accumulate(dt, speed float64) {
	if !s.enabled || !(dt > 0) || !(speed > 0) {
		return
	}
	s.distance += dt * speed
	s.sink.ReportDistance(int(s.distance))
}

// Pickup records a collected coin.
func (s *ScoreTracker) Pickup() {
	s.pickups++
	s.sink.ReportPickup()
}

// Distance returns the accumulated distance in pixels.
func (s *ScoreTracker) Distance() float64 {
	return s.distance
}

// Pickups returns the number of coins collected.
func (s *ScoreTracker) Pickups() int {
	return s.pickups
}

// Enabled reports whether distance scoring is on.
func (s *ScoreTracker) Enabled() bool {
	return s.enabled
}
