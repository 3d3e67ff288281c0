package gui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/vovakirdan/parkour/internal/core"
	"github.com/vovakirdan/parkour/internal/games/runner"
)

var (
	colorSky      = color.RGBA{0x87, 0xce, 0xeb, 0xff}
	colorSkyline  = color.RGBA{0x9a, 0xa8, 0xb8, 0xff}
	colorGround   = color.RGBA{0xee, 0xee, 0xee, 0xff}
	colorStripe   = color.RGBA{0xb0, 0xb0, 0xb0, 0xff}
	colorEarth    = color.RGBA{0x8b, 0x5a, 0x2b, 0xff}
	colorBox      = color.RGBA{0xa0, 0x6a, 0x32, 0xff}
	colorBoxEdge  = color.RGBA{0x5c, 0x3a, 0x18, 0xff}
	colorAnvil    = color.RGBA{0x55, 0x55, 0x60, 0xff}
	colorCoin     = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorCoinDim  = color.RGBA{0xd4, 0xa0, 0x17, 0xff}
	colorActor    = color.RGBA{0xff, 0x8c, 0x00, 0xff}
	colorAirborne = color.RGBA{0xff, 0xa5, 0x4f, 0xff}
	colorCrouch   = color.RGBA{0xcc, 0x66, 0x00, 0xff}
	colorDead     = color.RGBA{0xc0, 0x30, 0x30, 0xff}
	colorHitbox   = color.RGBA{0xff, 0x00, 0xff, 0xff}
	colorPanel    = color.RGBA{0x00, 0x00, 0x00, 0xc8}
)

// skylineHeights are building heights across one background image, as a
// fraction of the space between ground and sky.
var skylineHeights = []float64{0.35, 0.55, 0.3, 0.7, 0.45, 0.25, 0.6, 0.4, 0.8, 0.35, 0.5, 0.3}

// view maps y-up world pixels onto the y-down logical screen.
type view struct {
	height float64
}

// rect converts a world rectangle to screen pixels.
func (v view) rect(r core.RectF) image.Rectangle {
	x0 := int(math.Floor(r.X))
	x1 := int(math.Ceil(r.Right()))
	y0 := int(math.Floor(v.height - r.Top()))
	y1 := int(math.Ceil(v.height - r.Y))
	return image.Rect(x0, y0, x1, y1)
}

// fillRect fills r clipped to dst.
func fillRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	dst.SubImage(r).(*ebiten.Image).Fill(clr)
}

// strokeRect draws a one-pixel outline.
func strokeRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), clr)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), clr)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), clr)
	fillRect(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), clr)
}

// Draw renders the current frame.
func (a *App) Draw(screen *ebiten.Image) {
	w := a.game.World()
	cfg := w.Config()
	v := view{height: cfg.World.Height}

	screen.Fill(colorSky)
	a.drawSkyline(screen, v, w.Scroll().Background, cfg.World.GroundY)
	a.drawGround(screen, v, w.Scroll().Ground, cfg.World.GroundY, cfg.World.Width)

	for _, o := range w.Field().Objects() {
		a.drawObject(screen, v, o)
	}
	a.drawActor(screen, v, w.Actor())
	a.drawHUD(screen, w)

	state := a.game.State()
	switch {
	case state.Paused:
		drawCenterPanel(screen, "PAUSED", "P to resume")
	case state.GameOver:
		line := fmt.Sprintf("Distance %d  Coins %d", state.Score, state.Coins)
		if a.lastRunID != 0 {
			line += fmt.Sprintf("  (replay #%d)", a.lastRunID)
		}
		drawCenterPanel(screen, "GAME OVER", line+"\nR to restart, Esc to quit")
	}
}

// drawSkyline draws both background images at their scroll positions.
func (a *App) drawSkyline(dst *ebiten.Image, v view, bg runner.LayerPair, groundY float64) {
	span := v.height - groundY
	step := bg.Width / float64(len(skylineHeights))
	for _, left := range bg.Pos {
		for i, h := range skylineHeights {
			b := core.NewRectF(left+float64(i)*step+2, groundY, step-4, h*span*0.6)
			fillRect(dst, v.rect(b), colorSkyline)
		}
	}
}

// drawGround draws the earth and the scrolling ground stripes.
func (a *App) drawGround(dst *ebiten.Image, v view, ground runner.LayerPair, groundY, width float64) {
	fillRect(dst, v.rect(core.NewRectF(0, 0, width, groundY)), colorEarth)
	fillRect(dst, v.rect(core.NewRectF(0, groundY-4, width, 4)), colorGround)
	for _, left := range ground.Pos {
		for x := 0.0; x < ground.Width; x += 48 {
			fillRect(dst, v.rect(core.NewRectF(left+x, groundY-4, 12, 4)), colorStripe)
		}
	}
}

func (a *App) drawObject(dst *ebiten.Image, v view, o runner.WorldObject) {
	r := v.rect(o.Bounds())
	switch o.Kind {
	case runner.KindCoin:
		// Coins pulse in eight steps, offset by their grid phase
		clr := colorCoin
		if (a.ticks/6+o.Phase)%8 >= 4 {
			clr = colorCoinDim
		}
		inset := r.Inset(r.Dx() / 5)
		fillRect(dst, inset, clr)
	case runner.KindBox:
		fillRect(dst, r, colorBox)
		strokeRect(dst, r, colorBoxEdge)
	case runner.KindAnvil:
		fillRect(dst, r, colorAnvil)
		fillRect(dst, image.Rect(r.Min.X+r.Dx()/4, r.Max.Y-r.Dy()/3, r.Max.X-r.Dx()/4, r.Max.Y), colorBoxEdge)
	}
}

func (a *App) drawActor(dst *ebiten.Image, v view, actor *runner.ActorController) {
	clr := colorActor
	switch actor.Mode() {
	case runner.ModeJumpingUp, runner.ModeJumpingDown:
		clr = colorAirborne
	case runner.ModeCrouch:
		clr = colorCrouch
	case runner.ModeGameOver:
		clr = colorDead
	}

	body := actor.Bounds()
	if actor.Mode() == runner.ModeCrouch {
		body.H *= 0.7
	}
	fillRect(dst, v.rect(body), clr)

	if a.opts.ShowHitbox {
		strokeRect(dst, v.rect(actor.Hitbox()), colorHitbox)
	}
}

func (a *App) drawHUD(dst *ebiten.Image, w *runner.World) {
	score := w.Score()
	hud := fmt.Sprintf("Coins: %d", score.Pickups())
	if score.Enabled() {
		hud = fmt.Sprintf("Distance: %d  Coins: %d", int(score.Distance()), score.Pickups())
	}
	ebitenutil.DebugPrintAt(dst, hud, 4, 4)

	right := fmt.Sprintf("%s  %.0f px/s", a.patternName(w), w.Speed())
	ebitenutil.DebugPrintAt(dst, right, dst.Bounds().Dx()-6*len(right)-4, 4)
}

func (a *App) patternName(w *runner.World) string {
	if p := w.Field().LastPattern(); p != nil {
		return p.Name
	}
	return ""
}

// drawCenterPanel draws a translucent panel with centered debug text.
func drawCenterPanel(screen *ebiten.Image, title, body string) {
	b := screen.Bounds()
	pw, ph := b.Dx()*3/4, 64
	px, py := (b.Dx()-pw)/2, (b.Dy()-ph)/2

	panel := ebiten.NewImage(pw, ph)
	panel.Fill(colorPanel)
	ebitenutil.DebugPrintAt(panel, title+"\n\n"+body, 8, 6)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(panel, op)
	panel.Deallocate()
}
