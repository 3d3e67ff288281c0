package runner

// Resolution summarizes one collision pass.
type Resolution struct {
	Collided bool // Any object touched the hitbox
	Pickups  int  // Coins collected this frame
	Landed   bool // Actor landed on top of an obstacle
	Fatal    bool // Actor hit an obstacle and the run ended
	FellOff  bool // Actor ran off an obstacle edge
}

// CollisionResolver tests the actor against the live objects once per frame.
// It borrows both the actor and the field for the duration of a pass and
// owns neither.
type CollisionResolver struct {
	groundY   float64
	tolerance float64
	audio     AudioSink
	score     *ScoreTracker
}

// NewCollisionResolver creates a resolver. An actor whose bottom edge was at
// least objTop-tolerance on the previous frame lands on the object instead of
// crashing into it.
func NewCollisionResolver(groundY, tolerance float64, audio AudioSink, score *ScoreTracker) *CollisionResolver {
	if audio == nil {
		audio = nopAudio{}
	}
	return &CollisionResolver{
		groundY:   groundY,
		tolerance: tolerance,
		audio:     audio,
		score:     score,
	}
}

// Resolve runs the collision pass. Every overlapping coin is collected even
// after a fatal hit; obstacles after a fatal hit are ignored.
func (r *CollisionResolver) Resolve(actor *ActorController, field *ObstacleField) Resolution {
	var res Resolution
	if actor.Mode() == ModeGameOver {
		return res
	}

	hit := actor.Hitbox()
	var picked []int

	for i, o := range field.Objects() {
		if o.X > hit.Right() {
			break
		}
		if !hit.Touches(o.Bounds()) {
			continue
		}
		res.Collided = true

		switch o.Kind {
		case KindCoin:
			picked = append(picked, i)
			res.Pickups++
			r.audio.PlayEffect(EffectPickup)
			if r.score != nil {
				r.score.Pickup()
			}

		case KindBox, KindAnvil:
			if res.Fatal {
				continue
			}
			top := o.Y + o.H
			a := actor.Actor()
			switch {
			case a.VY == 0 && a.Y == top:
				// Already standing on it.
			case a.Mode == ModeJumpingUp && a.VY > 0 && a.Y >= top:
				// Jumping off its top.
			case actor.PrevBottom() >= top-r.tolerance:
				actor.LandOn(top)
				hit = actor.Hitbox()
				res.Landed = true
			default:
				actor.GameOver()
				r.audio.PlayEffect(EffectCrash)
				res.Fatal = true
			}
		}
	}

	field.RemoveIndices(picked)

	if !res.Collided && actor.Mode() == ModeRunning && actor.Actor().Y > r.groundY {
		actor.FallOff()
		res.FellOff = true
	}
	return res
}
