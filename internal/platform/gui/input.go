package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/parkour/internal/core"
)

// keySource reports key edges for the current tick.
type keySource interface {
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
	Pressed(k ebiten.Key) bool
}

// ebitenKeys reads the real keyboard.
type ebitenKeys struct{}

func (ebitenKeys) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeys) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }
func (ebitenKeys) Pressed(k ebiten.Key) bool      { return ebiten.IsKeyPressed(k) }

var (
	jumpKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}
	pauseKeys = []ebiten.Key{ebiten.KeyP}
	resetKeys = []ebiten.Key{ebiten.KeyR}
	quitKeys  = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}
)

func anyJustPressed(src keySource, keys []ebiten.Key) bool {
	for _, k := range keys {
		if src.JustPressed(k) {
			return true
		}
	}
	return false
}

// jumpReleased reports a release only once no jump key is held any more, so
// rolling from Space to Up keeps the jump going.
func jumpReleased(src keySource) bool {
	released := false
	for _, k := range jumpKeys {
		if src.Pressed(k) {
			return false
		}
		if src.JustReleased(k) {
			released = true
		}
	}
	return released
}

// readInput builds this tick's input frame. Unlike the terminal, the window
// reports real releases, so no hold window is needed.
func readInput(src keySource) (frame core.InputFrame, quit bool) {
	frame = core.NewInputFrame()
	if anyJustPressed(src, quitKeys) {
		frame.Set(core.ActionQuit)
		return frame, true
	}
	if anyJustPressed(src, jumpKeys) {
		frame.Set(core.ActionJump)
	}
	if jumpReleased(src) {
		frame.Set(core.ActionRelease)
	}
	if anyJustPressed(src, pauseKeys) {
		frame.Set(core.ActionPause)
	}
	if anyJustPressed(src, resetKeys) {
		frame.Set(core.ActionRestart)
	}
	return frame, false
}
