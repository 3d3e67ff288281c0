package runner

// Snapshot is a comparable summary of the world state, used by replays and
// determinism checks.
type Snapshot struct {
	Frame    int
	Elapsed  float64
	Mode     Mode
	ActorY   float64
	ActorVY  float64
	Distance float64
	Coins    int
	Speed    float64
	Objects  int
	Patterns int // Patterns spawned so far

	Background [2]float64
	Ground     [2]float64
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	a := w.actor.Actor()
	return Snapshot{
		Frame:      w.frame,
		Elapsed:    w.elapsed,
		Mode:       a.Mode,
		ActorY:     a.Y,
		ActorVY:    a.VY,
		Distance:   w.score.Distance(),
		Coins:      w.score.Pickups(),
		Speed:      w.ramp.Speed(),
		Objects:    w.field.Len(),
		Patterns:   w.field.Spawned(),
		Background: w.scroll.Background.Pos,
		Ground:     w.scroll.Ground.Pos,
	}
}
