package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)

	entry := RunEntry{
		GameID:     "parkour",
		Seed:       42,
		Config:     []byte("physics:\n  gravity: 2.5\n"),
		Frames:     []byte(`[{"dt":0.016,"p":true}]`),
		FrameCount: 1,
		Distance:   1234.5,
		Coins:      7,
		Duration:   4.9,
	}

	id, err := store.SaveRun(entry)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}

	if got.ID != id || got.GameID != "parkour" || got.Seed != 42 {
		t.Errorf("LoadRun() = %+v", got)
	}
	if !bytes.Equal(got.Config, entry.Config) || !bytes.Equal(got.Frames, entry.Frames) {
		t.Error("payloads did not round-trip")
	}
	if got.Distance != 1234.5 || got.Coins != 7 || got.FrameCount != 1 || got.Duration != 4.9 {
		t.Errorf("stats = %+v", got)
	}
}

func TestStoreListRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.SaveRun(RunEntry{GameID: "parkour", Seed: int64(i), Config: []byte("{}"), Frames: []byte("[]")}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(RunEntry{GameID: "parkour_hold", Config: []byte("{}"), Frames: []byte("[]")}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.ListRuns("parkour", 10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	// Newest first
	if runs[0].Seed != 2 || runs[2].Seed != 0 {
		t.Errorf("runs not newest first: %+v", runs)
	}
	if runs[0].Frames != nil {
		t.Error("ListRuns should not load payloads")
	}

	all, err := store.ListRuns("", 10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 runs across games, got %d", len(all))
	}

	limited, err := store.ListRuns("", 2)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunEntry{GameID: "parkour", Config: []byte("{}"), Frames: []byte("[]")})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if _, err := store.LoadRun(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadRun() after delete: expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteRun(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteRun(): expected ErrNotFound, got %v", err)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		store.SaveRun(RunEntry{GameID: "parkour", Config: []byte("{}"), Frames: []byte("[]")})
	}
	store.SaveRun(RunEntry{GameID: "parkour_classic", Config: []byte("{}"), Frames: []byte("[]")})

	if err := store.ClearRuns("parkour"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if n, _ := store.CountRuns("parkour"); n != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", n)
	}
	if n, _ := store.CountRuns("parkour_classic"); n != 1 {
		t.Errorf("Other games should be untouched, got %d runs", n)
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, _ := store1.SaveRun(RunEntry{GameID: "parkour", Seed: 9, Config: []byte("{}"), Frames: []byte("[]")})
	store1.Close()

	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() second time failed: %v", err)
	}
	defer store2.Close()

	got, err := store2.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun() failed: %v", err)
	}
	if got.Seed != 9 {
		t.Errorf("Seed = %d, expected 9", got.Seed)
	}
}
