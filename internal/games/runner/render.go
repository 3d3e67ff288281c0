package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/parkour/internal/core"
)

// Visual characters for rendering
const (
	GroundChar   = '═'
	EarthChar    = '░'
	BoxChar      = '▓'
	AnvilChar    = '█'
	ActorChar    = '█'
	ActorHead    = '●'
	SkylineChar  = '▁'
	SkylineTall  = '▃'
	SkylineTower = '▅'
)

var coinFrames = []rune{'o', 'O', '0', 'O'}

// skyline is one background image width of building heights, sampled across
// the layer.
var skyline = []rune{
	' ', SkylineChar, SkylineTall, SkylineTall, ' ', SkylineTower, SkylineChar, ' ',
	' ', SkylineTall, SkylineChar, SkylineTower, SkylineTower, ' ', SkylineChar, ' ',
}

// projection maps world pixels (y up) to screen cells (y down). Row 0 is
// reserved for the HUD.
type projection struct {
	sx, sy float64
	rows   int
	worldH float64
}

func newProjection(dst *core.Screen, worldW, worldH float64) projection {
	rows := dst.Height() - 1
	return projection{
		sx:     float64(dst.Width()) / worldW,
		sy:     float64(rows) / worldH,
		rows:   rows,
		worldH: worldH,
	}
}

func (p projection) col(x float64) int {
	return int(math.Floor(x * p.sx))
}

func (p projection) row(y float64) int {
	return 1 + int(math.Floor((p.worldH-y)*p.sy))
}

// cells returns the screen rectangle covered by a world rectangle. Every
// object covers at least one cell.
func (p projection) cells(r core.RectF) core.Rect {
	x0, x1 := p.col(r.X), p.col(r.Right())
	y0, y1 := p.row(r.Top()), p.row(r.Y)
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	w := g.world
	cfg := w.Config()
	p := newProjection(dst, cfg.World.Width, cfg.World.Height)

	g.drawBackground(dst, p)
	g.drawGround(dst, p)
	for _, o := range w.Field().Objects() {
		g.drawObject(dst, p, o)
	}
	g.drawActor(dst, p)
	g.drawHUD(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if w.GameOver() {
		sub := fmt.Sprintf("Coins: %d  |  Press R to restart", w.Score().Pickups())
		if w.Score().Enabled() {
			sub = fmt.Sprintf("Distance: %d  |  Coins: %d  |  Press R to restart", int(w.Score().Distance()), w.Score().Pickups())
		}
		g.drawCenteredMessage(dst, "GAME OVER", sub)
	}
}

// drawBackground renders the parallax skyline just above the ground.
func (g *Game) drawBackground(dst *core.Screen, p projection) {
	bg := g.world.Scroll().Background
	y := p.row(g.world.Config().World.GroundY) - 1
	if y < 1 {
		return
	}
	for c := 0; c < dst.Width(); c++ {
		u := layerOffset(float64(c)/p.sx, bg)
		i := int(u / bg.Width * float64(len(skyline)))
		dst.SetColored(c, y, skyline[core.Clamp(i, 0, len(skyline)-1)], core.ColorGray)
	}
}

// drawGround renders the scrolling ground line and the earth below it.
func (g *Game) drawGround(dst *core.Screen, p projection) {
	ground := g.world.Scroll().Ground
	y := p.row(g.world.Config().World.GroundY)
	for c := 0; c < dst.Width(); c++ {
		u := layerOffset(float64(c)/p.sx, ground)
		ch := GroundChar
		if int(u/24)%4 == 0 {
			ch = '╤'
		}
		dst.SetColored(c, y, ch, core.ColorWhite)
	}
	for row := y + 1; row < dst.Height(); row++ {
		dst.DrawHLine(0, row, dst.Width(), EarthChar, core.ColorBrown)
	}
}

// layerOffset returns how far into the layer image the world x falls.
func layerOffset(x float64, pair LayerPair) float64 {
	left := math.Min(pair.Pos[0], pair.Pos[1])
	u := math.Mod(x-left, pair.Width)
	if u < 0 {
		u += pair.Width
	}
	return u
}

func (g *Game) drawObject(dst *core.Screen, p projection, o WorldObject) {
	r := p.cells(o.Bounds())
	switch o.Kind {
	case KindCoin:
		frame := coinFrames[(o.Phase+g.ticks/6)%len(coinFrames)]
		dst.SetColored(r.X+r.W/2, r.Y+r.H/2, frame, core.ColorBrightYellow)
	case KindBox:
		dst.DrawRect(r, BoxChar, core.ColorOrange)
	case KindAnvil:
		dst.DrawRect(r, AnvilChar, core.ColorGray)
	}
}

func (g *Game) drawActor(dst *core.Screen, p projection) {
	ctrl := g.world.Actor()
	r := p.cells(ctrl.Bounds())

	color := core.ColorGreen
	body := ActorChar
	switch g.anim {
	case AnimCrouch:
		// Squash to the lower half.
		r.Y += r.H / 2
		r.H -= r.H / 2
	case AnimStopped:
		color = core.ColorRed
		body = 'X'
	case AnimJumpUp, AnimJumpDown:
		color = core.ColorBrightWhite
	}

	dst.DrawRect(r, body, color)
	dst.SetColored(r.X+r.W/2, r.Y, ActorHead, color)

	if g.anim == AnimRun && r.H > 1 {
		legs := "╱╲"
		if (g.ticks/5)%2 == 1 {
			legs = "╲╱"
		}
		dst.DrawTextColored(r.X, r.Bottom()-1, legs, color)
	}
}

// drawHUD draws the status line.
func (g *Game) drawHUD(dst *core.Screen) {
	w := g.world
	left := fmt.Sprintf(" Coins: %d ", w.Score().Pickups())
	if w.Score().Enabled() {
		left = fmt.Sprintf(" Distance: %d  Coins: %d ", int(w.Score().Distance()), w.Score().Pickups())
	}
	dst.DrawTextColored(1, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf(" Spd: %.0f ", w.Speed())
	if last := w.Field().LastPattern(); last != nil {
		right = fmt.Sprintf(" %s  Spd: %.0f ", last.Name, w.Speed())
	}
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, core.ColorCyan)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
