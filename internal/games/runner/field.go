package runner

import "github.com/vovakirdan/parkour/internal/config"

// ObstacleField holds the live world objects in spawn order. Objects spawn
// off the right edge and all scroll at the same speed, so the slice is always
// sorted by ascending X. Culling and collision rely on that.
type ObstacleField struct {
	source   PatternSource
	objects  config.ObjectsConfig
	features config.FeatureFlags

	worldW     float64
	groundY    float64
	cullMargin float64

	live    []WorldObject
	last    *Pattern // Most recently spawned pattern
	spawned int      // Patterns spawned since reset
}

// NewObstacleField creates a field and spawns the intro pattern right of
// the screen.
func NewObstacleField(cfg config.RunnerConfig, source PatternSource) *ObstacleField {
	f := &ObstacleField{
		source:     source,
		objects:    cfg.Objects,
		features:   cfg.Features,
		worldW:     cfg.World.Width,
		groundY:    cfg.World.GroundY,
		cullMargin: cfg.World.CullMargin,
	}
	f.Spawn(source.IntroPattern())
	return f
}

// Advance scrolls every object left by dt*speed, culls the ones that left the
// screen and replenishes from a random pattern when the field is empty.
func (f *ObstacleField) Advance(dt, speed float64) {
	if !(dt > 0) {
		return
	}

	dx := dt * speed
	for i := range f.live {
		f.live[i].X -= dx
	}

	f.cull()

	if len(f.live) == 0 {
		f.Spawn(f.source.RandomPattern())
	}
}

// cull drops objects from the front until the first one still on screen.
func (f *ObstacleField) cull() {
	n := 0
	for n < len(f.live) {
		o := f.live[n]
		if o.X+o.W+f.cullMargin >= 0 {
			break
		}
		n++
	}
	if n > 0 {
		f.live = append(f.live[:0], f.live[n:]...)
	}
}

// Spawn instantiates every cell of p starting at the right screen edge.
// Disabled object kinds are skipped.
func (f *ObstacleField) Spawn(p *Pattern) {
	if p == nil {
		return
	}
	f.last = p
	f.spawned++

	startX := f.worldW
	if n := len(f.live); n > 0 {
		// Keep ascending X even if a pattern is spawned early.
		tail := f.live[n-1].X
		if tail > startX {
			startX = tail
		}
	}

	for _, pl := range p.Placements() {
		if !f.enabled(pl.Kind) {
			continue
		}
		size := f.size(pl.Kind)
		o := WorldObject{
			Kind: pl.Kind,
			X:    startX + float64(pl.Col)*p.CellW,
			Y:    f.groundY + float64(pl.Row)*p.CellH,
			W:    size.Width,
			H:    size.Height,
		}
		if pl.Kind == KindCoin {
			o.Phase = (pl.Col + pl.Row) % 8
		}
		f.live = append(f.live, o)
	}
}

func (f *ObstacleField) enabled(k Kind) bool {
	if k == KindCoin {
		return f.features.Coins
	}
	return f.features.Obstacles
}

func (f *ObstacleField) size(k Kind) config.Size {
	switch k {
	case KindBox:
		return f.objects.Box
	case KindAnvil:
		return f.objects.Anvil
	default:
		return f.objects.Coin
	}
}

// Objects returns the live objects in ascending X order. The slice is owned
// by the field and must not be modified.
func (f *ObstacleField) Objects() []WorldObject {
	return f.live
}

// Len returns the number of live objects.
func (f *ObstacleField) Len() int {
	return len(f.live)
}

// LastPattern returns the most recently spawned pattern.
func (f *ObstacleField) LastPattern() *Pattern {
	return f.last
}

// Spawned returns how many patterns have been spawned.
func (f *ObstacleField) Spawned() int {
	return f.spawned
}

// RemoveIndices deletes the objects at the given ascending indices,
// preserving the order of the rest.
func (f *ObstacleField) RemoveIndices(idx []int) {
	if len(idx) == 0 {
		return
	}
	out := f.live[:0]
	next := 0
	for i, o := range f.live {
		if next < len(idx) && idx[next] == i {
			next++
			continue
		}
		out = append(out, o)
	}
	f.live = out
}
