package gui

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/parkour/internal/config"
	"github.com/vovakirdan/parkour/internal/core"
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/replay"
	"github.com/vovakirdan/parkour/internal/storage"
)

// fakeKeys is a scripted keyboard for one tick at a time.
type fakeKeys struct {
	pressed, justPressed, justReleased map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	k := &fakeKeys{}
	k.clear()
	return k
}

func (k *fakeKeys) clear() {
	k.justPressed = map[ebiten.Key]bool{}
	k.justReleased = map[ebiten.Key]bool{}
	if k.pressed == nil {
		k.pressed = map[ebiten.Key]bool{}
	}
}

func (k *fakeKeys) down(key ebiten.Key) {
	k.pressed[key] = true
	k.justPressed[key] = true
}

func (k *fakeKeys) up(key ebiten.Key) {
	delete(k.pressed, key)
	k.justReleased[key] = true
}

func (k *fakeKeys) JustPressed(key ebiten.Key) bool  { return k.justPressed[key] }
func (k *fakeKeys) JustReleased(key ebiten.Key) bool { return k.justReleased[key] }
func (k *fakeKeys) Pressed(key ebiten.Key) bool      { return k.pressed[key] }

func useTestConfig(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("speed:\n  acceleration: 0\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	runner.SetConfigPath(path)
	t.Cleanup(func() { runner.SetConfigPath("") })
}

// newTestApp returns an app on a scripted keyboard and a fixed 60 Hz clock.
func newTestApp(t *testing.T, opts Options) (*App, *fakeKeys) {
	t.Helper()
	useTestConfig(t)
	app := New(runner.New(config.VariantFull), core.RuntimeConfig{TickRate: 60, Seed: 9}, opts)
	keys := newFakeKeys()
	app.keys = keys
	clock := time.Unix(1000, 0)
	app.now = func() time.Time {
		clock = clock.Add(time.Second / 60)
		return clock
	}
	return app, keys
}

func update(t *testing.T, app *App, keys *fakeKeys) {
	t.Helper()
	if err := app.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	keys.clear()
}

func TestReadInput(t *testing.T) {
	keys := newFakeKeys()
	keys.down(ebiten.KeySpace)
	keys.down(ebiten.KeyP)
	in, quit := readInput(keys)
	if quit || !in.Has(core.ActionJump) || !in.Has(core.ActionPause) || in.Has(core.ActionRelease) {
		t.Errorf("press frame = %+v, quit %v", in, quit)
	}

	keys.clear()
	keys.down(ebiten.KeyArrowUp)
	keys.up(ebiten.KeySpace)
	in, _ = readInput(keys)
	if in.Has(core.ActionRelease) {
		t.Error("release should wait until every jump key is up")
	}

	keys.clear()
	keys.up(ebiten.KeyArrowUp)
	in, _ = readInput(keys)
	if !in.Has(core.ActionRelease) {
		t.Error("releasing the last jump key should release")
	}

	keys.clear()
	keys.down(ebiten.KeyEscape)
	if _, quit := readInput(keys); !quit {
		t.Error("escape should quit")
	}
}

func TestViewFlipsY(t *testing.T) {
	v := view{height: 320}
	got := v.rect(core.NewRectF(30, 60, 80, 80))
	want := image.Rect(30, 180, 110, 260)
	if got != want {
		t.Errorf("rect = %v, want %v", got, want)
	}
}

func TestAppHeldJump(t *testing.T) {
	app, keys := newTestApp(t, Options{})
	actor := app.game.World().Actor()

	keys.down(ebiten.KeySpace)
	update(t, app, keys)
	if actor.Mode() != runner.ModeJumpingUp || actor.Button().State != runner.ButtonPressed {
		t.Fatalf("after press: mode %v button %v", actor.Mode(), actor.Button().State)
	}

	for i := 0; i < 5; i++ {
		update(t, app, keys)
	}
	if actor.Button().State != runner.ButtonPressed {
		t.Fatal("button should stay down while the key is held")
	}

	keys.up(ebiten.KeySpace)
	update(t, app, keys)
	if actor.Button().State != runner.ButtonReleased {
		t.Error("key up should release the button")
	}
}

func TestAppRecordsAndRestarts(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	app, keys := newTestApp(t, Options{Store: store, Record: true})
	for i := 0; i < 5000 && !app.game.State().GameOver; i++ {
		update(t, app, keys)
	}
	if !app.game.State().GameOver {
		t.Fatal("run should end without jumping")
	}
	if app.LastRunID() == 0 {
		t.Fatal("finished run should be stored")
	}

	rec, err := replay.Load(store, app.LastRunID())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := replay.Verify(rec); err != nil {
		t.Errorf("Verify failed: %v", err)
	}

	keys.down(ebiten.KeyR)
	update(t, app, keys)
	if app.game.State().GameOver || app.LastRunID() != 0 {
		t.Error("R after game over should start a new run")
	}

	keys.down(ebiten.KeyQ)
	if err := app.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after Q = %v, want Termination", err)
	}
}

func TestLayoutIsWorldSize(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	w, h := app.Layout(1920, 1080)
	if w != 480 || h != 320 {
		t.Errorf("Layout = %dx%d, want 480x320", w, h)
	}
}
