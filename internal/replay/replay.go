// Package replay records the per-frame input of a run and re-simulates it.
//
// A run is fully determined by its configuration, its seed and the sequence
// of (dt, press, release) frames fed to the world, so a recording is small
// enough to keep in the run store.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/parkour/internal/config"
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/storage"
)

// ErrMismatch is returned when a re-simulated run disagrees with its recording.
var ErrMismatch = errors.New("replay: result mismatch")

// Frame is the input fed to the world in one frame.
type Frame struct {
	DT      float64 `json:"dt"`
	Press   bool    `json:"p,omitempty"`
	Release bool    `json:"r,omitempty"`
}

// Recording is a complete run: everything needed to re-simulate it plus the
// result it produced.
type Recording struct {
	GameID string
	Seed   int64
	Config config.RunnerConfig
	Frames []Frame

	Distance float64
	Coins    int
	Duration float64
}

// Recorder collects frames from a runner.Game. It implements
// runner.FrameObserver.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a run.
func NewRecorder(gameID string, seed int64, cfg config.RunnerConfig) *Recorder {
	return &Recorder{rec: Recording{GameID: gameID, Seed: seed, Config: cfg}}
}

// ObserveFrame appends one frame.
func (r *Recorder) ObserveFrame(dt float64, press, release bool) {
	r.rec.Frames = append(r.rec.Frames, Frame{DT: dt, Press: press, Release: release})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Finish stamps the final state onto the recording and returns it.
func (r *Recorder) Finish(s runner.Snapshot) *Recording {
	rec := r.rec
	rec.Frames = append([]Frame(nil), r.rec.Frames...)
	rec.Distance = s.Distance
	rec.Coins = s.Coins
	rec.Duration = s.Elapsed
	return &rec
}

// Run re-simulates a recording on a fresh world and returns the final state.
func Run(rec *Recording) (runner.Snapshot, error) {
	w, err := runner.NewWorld(rec.Config, runner.Options{Seed: rec.Seed})
	if err != nil {
		return runner.Snapshot{}, fmt.Errorf("replay: %w", err)
	}
	for _, f := range rec.Frames {
		w.Apply(f.DT, f.Press, f.Release)
	}
	return w.Snapshot(), nil
}

// Verify re-simulates a recording and checks that it ends the same way.
func Verify(rec *Recording) (runner.Snapshot, error) {
	s, err := Run(rec)
	if err != nil {
		return s, err
	}
	if s.Distance != rec.Distance || s.Coins != rec.Coins {
		return s, fmt.Errorf("%w: recorded distance %.1f coins %d, replayed distance %.1f coins %d",
			ErrMismatch, rec.Distance, rec.Coins, s.Distance, s.Coins)
	}
	return s, nil
}

// Encode converts a recording into a storage entry.
func Encode(rec *Recording) (storage.RunEntry, error) {
	cfg, err := yaml.Marshal(rec.Config)
	if err != nil {
		return storage.RunEntry{}, fmt.Errorf("replay: encode config: %w", err)
	}
	frames, err := json.Marshal(rec.Frames)
	if err != nil {
		return storage.RunEntry{}, fmt.Errorf("replay: encode frames: %w", err)
	}
	return storage.RunEntry{
		GameID:     rec.GameID,
		Seed:       rec.Seed,
		Config:     cfg,
		Frames:     frames,
		FrameCount: len(rec.Frames),
		Distance:   rec.Distance,
		Coins:      rec.Coins,
		Duration:   rec.Duration,
	}, nil
}

// Decode converts a storage entry back into a recording.
func Decode(e *storage.RunEntry) (*Recording, error) {
	cfg, err := config.ParseRunner(e.Config)
	if err != nil {
		return nil, fmt.Errorf("replay: decode config of run %d: %w", e.ID, err)
	}
	var frames []Frame
	if err := json.Unmarshal(e.Frames, &frames); err != nil {
		return nil, fmt.Errorf("replay: decode frames of run %d: %w", e.ID, err)
	}
	return &Recording{
		GameID:   e.GameID,
		Seed:     e.Seed,
		Config:   cfg,
		Frames:   frames,
		Distance: e.Distance,
		Coins:    e.Coins,
		Duration: e.Duration,
	}, nil
}

// Save encodes and stores a recording, returning its run ID.
func Save(store *storage.Store, rec *Recording) (int64, error) {
	e, err := Encode(rec)
	if err != nil {
		return 0, err
	}
	return store.SaveRun(e)
}

// Load fetches and decodes a recording.
func Load(store *storage.Store, id int64) (*Recording, error) {
	e, err := store.LoadRun(id)
	if err != nil {
		return nil, err
	}
	return Decode(e)
}
