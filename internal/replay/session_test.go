package replay

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/parkour/internal/config"
	"github.com/vovakirdan/parkour/internal/core"
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/storage"
)

func stepFrames(game *runner.Game, n int) {
	in := core.NewInputFrame()
	for i := 0; i < n; i++ {
		in.Clear()
		if i%40 == 0 {
			in.Set(core.ActionJump)
		}
		if i%40 == 10 {
			in.Set(core.ActionRelease)
		}
		game.Step(in, 1.0/60)
	}
}

func TestSessionRecordsConsecutiveRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	game := runner.New(config.VariantHold)
	session := NewSession(store, game)

	var ids []int64
	var frames []int
	for seed := int64(1); seed <= 2; seed++ {
		game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
		session.Start()
		stepFrames(game, 120)
		n := session.Frames()
		if n == 0 || n > 120 {
			t.Errorf("seed %d: recorded %d frames, want 1..120", seed, n)
		}

		id, err := session.Finish()
		if err != nil {
			t.Fatalf("Finish failed: %v", err)
		}
		ids = append(ids, id)
		frames = append(frames, n)
	}
	if ids[0] == 0 || ids[0] == ids[1] {
		t.Fatalf("ids = %v, want two distinct runs", ids)
	}

	for i, id := range ids {
		rec, err := Load(store, id)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if rec.Seed != int64(i+1) || rec.GameID != game.ID() || len(rec.Frames) != frames[i] {
			t.Errorf("run %d: seed %d game %s frames %d", id, rec.Seed, rec.GameID, len(rec.Frames))
		}
		if _, err := Verify(rec); err != nil {
			t.Errorf("run %d: Verify failed: %v", id, err)
		}
	}

	// Frames after Finish are not observed any more
	stepFrames(game, 10)
	if session.Frames() != 0 {
		t.Errorf("frames after Finish = %d, want 0", session.Frames())
	}
	if id, err := session.Finish(); id != 0 || err != nil {
		t.Errorf("second Finish = %d, %v; want 0, nil", id, err)
	}
}

func TestSessionWithoutStore(t *testing.T) {
	game := runner.New(config.VariantFull)
	game.Reset(core.RuntimeConfig{TickRate: 60, Seed: 3})

	session := NewSession(nil, game)
	session.Start()
	stepFrames(game, 30)
	if session.Frames() != 0 {
		t.Errorf("frames = %d, want 0 without a store", session.Frames())
	}
	if id, err := session.Finish(); id != 0 || err != nil {
		t.Errorf("Finish = %d, %v; want 0, nil", id, err)
	}
}
