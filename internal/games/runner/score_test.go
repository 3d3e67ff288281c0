package runner

import (
	"math"
	"testing"
)

func TestScoreConstantSpeed(t *testing.T) {
	sink := &recordingScore{}
	s := NewScoreTracker(true, sink)

	const speed, frames = 250.0, 600
	for i := 0; i < frames; i++ {
		s.Accumulate(frame, speed)
	}

	want := speed * frames * frame
	if math.Abs(s.Distance()-want) > 1e-6 {
		t.Errorf("Distance = %f, expected %f", s.Distance(), want)
	}
	if len(sink.distances) != frames {
		t.Fatalf("reported %d times, expected %d", len(sink.distances), frames)
	}
	for i := 1; i < len(sink.distances); i++ {
		if sink.distances[i] < sink.distances[i-1] {
			t.Fatalf("reported distance decreased at frame %d", i)
		}
	}
	if last := sink.distances[len(sink.distances)-1]; last < int(want)-1 {
		t.Errorf("last report = %d, expected about %d", last, int(want))
	}
}

func TestScoreDisabled(t *testing.T) {
	sink := &recordingScore{}
	s := NewScoreTracker(false, sink)

	s.Accumulate(1, 250)
	s.Pickup()

	if s.Distance() != 0 || len(sink.distances) != 0 {
		t.Errorf("disabled tracker accumulated %f", s.Distance())
	}
	if s.Pickups() != 1 || sink.pickups != 1 {
		t.Errorf("pickups = %d (sink %d), expected 1", s.Pickups(), sink.pickups)
	}
}

func TestScoreIgnoresDegenerateFrames(t *testing.T) {
	s := NewScoreTracker(true, nil)

	s.Accumulate(0, 250)
	s.Accumulate(-1, 250)
	s.Accumulate(math.NaN(), 250)
	s.Accumulate(1, 0)

	if s.Distance() != 0 {
		t.Errorf("Distance = %f, expected 0", s.Distance())
	}
}
