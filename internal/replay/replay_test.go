package replay

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/parkour/internal/config"
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/storage"
)

// record plays a run with pseudo-random input and returns its recording.
func record(t *testing.T, seed int64, frames int) *Recording {
	t.Helper()

	cfg := config.DefaultRunnerConfig()
	w, err := runner.NewWorld(cfg, runner.Options{Seed: seed})
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}

	rec := NewRecorder("parkour", seed, cfg)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < frames && !w.GameOver(); i++ {
		dt := 0.01 + rng.Float64()*0.02
		press, release := rng.Intn(25) == 0, rng.Intn(8) == 0
		rec.ObserveFrame(dt, press, release)
		w.Apply(dt, press, release)
	}
	return rec.Finish(w.Snapshot())
}

func TestVerifyRecordedRun(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		rec := record(t, seed, 1500)

		s, err := Verify(rec)
		if err != nil {
			t.Fatalf("seed %d: Verify failed: %v", seed, err)
		}
		if s.Frame != len(rec.Frames) {
			t.Errorf("seed %d: replayed %d frames, recorded %d", seed, s.Frame, len(rec.Frames))
		}
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec := record(t, 3, 600)
	rec.Distance += 10

	if _, err := Verify(rec); !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestRecorderFinishCopiesFrames(t *testing.T) {
	r := NewRecorder("parkour", 1, config.DefaultRunnerConfig())
	r.ObserveFrame(0.016, true, false)

	rec := r.Finish(runner.Snapshot{Distance: 4, Coins: 1, Elapsed: 0.016})
	r.ObserveFrame(0.016, false, true)

	if len(rec.Frames) != 1 || r.Len() != 2 {
		t.Errorf("recording has %d frames, recorder %d; expected 1 and 2", len(rec.Frames), r.Len())
	}
	if rec.Distance != 4 || rec.Coins != 1 || rec.Duration != 0.016 {
		t.Errorf("result = %+v", rec)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	cfg := config.DefaultRunnerConfig()
	config.ApplyVariant(&cfg, config.VariantCrouch)
	config.ApplyDifficulty(&cfg, config.DifficultyHard)

	w, err := runner.NewWorld(cfg, runner.Options{Seed: 99})
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	r := NewRecorder("parkour_crouch", 99, cfg)
	for i := 0; i < 400 && !w.GameOver(); i++ {
		press := i%50 == 0
		r.ObserveFrame(1.0/60, press, false)
		w.Apply(1.0/60, press, false)
	}
	rec := r.Finish(w.Snapshot())

	id, err := Save(store, rec)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(store, id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Config != cfg {
		t.Errorf("config did not round-trip:\n got %+v\nwant %+v", loaded.Config, cfg)
	}
	if len(loaded.Frames) != len(rec.Frames) || loaded.Seed != 99 || loaded.GameID != "parkour_crouch" {
		t.Errorf("loaded = %d frames, seed %d, game %s", len(loaded.Frames), loaded.Seed, loaded.GameID)
	}
	if _, err := Verify(loaded); err != nil {
		t.Errorf("Verify after load failed: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	if _, err := Load(store, 12); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
