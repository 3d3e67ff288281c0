package runner

import (
	"testing"

	"github.com/vovakirdan/parkour/internal/config"
)

type collisionFixture struct {
	actor    *ActorController
	app      *recordingAppearance
	audio    *recordingAudio
	field    *ObstacleField
	score    *ScoreTracker
	resolver *CollisionResolver
}

func newCollisionFixture(cfg config.RunnerConfig, objs ...WorldObject) *collisionFixture {
	fx := &collisionFixture{}
	fx.actor, fx.app, fx.audio = newTestActor(cfg)

	empty := MustPattern("empty", 28, 44, []string{"."})
	fx.field = NewObstacleField(cfg, &fixedSource{intro: empty, random: empty})
	fx.field.live = append([]WorldObject(nil), objs...)

	fx.score = NewScoreTracker(true, nil)
	fx.resolver = NewCollisionResolver(cfg.World.GroundY, cfg.World.LandingTolerance, fx.audio, fx.score)
	return fx
}

func (fx *collisionFixture) resolve() Resolution {
	return fx.resolver.Resolve(fx.actor, fx.field)
}

// fallingAt puts the actor in mid-fall, with its bottom edge at prev on the
// previous frame and at y now.
func (fx *collisionFixture) fallingAt(prev, y float64) {
	fx.actor.actor.Mode = ModeJumpingDown
	fx.actor.actor.Y = y
	fx.actor.actor.VY = y - prev
	fx.actor.prevY = prev
}

func coin(x, y float64) WorldObject {
	return WorldObject{Kind: KindCoin, X: x, Y: y, W: 28, H: 28}
}

func box(x, y float64) WorldObject {
	return WorldObject{Kind: KindBox, X: x, Y: y, W: 56, H: 44}
}

func TestCollisionCoinPickup(t *testing.T) {
	fx := newCollisionFixture(testConfig(), coin(70, groundY), coin(80, groundY+40), coin(200, groundY))

	res := fx.resolve()

	if res.Pickups != 2 {
		t.Errorf("Pickups = %d, expected 2", res.Pickups)
	}
	if fx.field.Len() != 1 || fx.field.Objects()[0].X != 200 {
		t.Errorf("remaining objects = %+v, expected only the far coin", fx.field.Objects())
	}
	if fx.audio.count(EffectPickup) != 2 {
		t.Errorf("pickup sound played %d times, expected 2", fx.audio.count(EffectPickup))
	}
	if fx.score.Pickups() != 2 {
		t.Errorf("score pickups = %d, expected 2", fx.score.Pickups())
	}
	if fx.actor.Mode() != ModeRunning {
		t.Errorf("coins should not change the actor, mode = %v", fx.actor.Mode())
	}
}

func TestCollisionSideHitIsFatal(t *testing.T) {
	fx := newCollisionFixture(testConfig(), box(80, groundY))

	res := fx.resolve()

	if !res.Fatal {
		t.Fatal("running into a box should be fatal")
	}
	if fx.actor.Mode() != ModeGameOver {
		t.Errorf("mode = %v, expected game-over", fx.actor.Mode())
	}
	if fx.app.last() != AnimStopped {
		t.Errorf("appearance = %v, expected stopped", fx.app.last())
	}
	if fx.audio.count(EffectCrash) != 1 {
		t.Errorf("crash sound played %d times, expected 1", fx.audio.count(EffectCrash))
	}
}

func TestCollisionLandingOnTop(t *testing.T) {
	fx := newCollisionFixture(testConfig(), box(80, groundY))
	fx.fallingAt(110, 100)

	res := fx.resolve()

	if !res.Landed || res.Fatal {
		t.Fatalf("resolution = %+v, expected a landing", res)
	}
	a := fx.actor.Actor()
	if a.Mode != ModeRunning || a.Y != groundY+44 || a.VY != 0 {
		t.Errorf("actor after landing = %+v", a)
	}
	if fx.app.last() != AnimRun {
		t.Errorf("appearance = %v, expected run", fx.app.last())
	}
}

func TestCollisionLandingTolerance(t *testing.T) {
	tests := []struct {
		name      string
		tolerance float64
		prev      float64
		fatal     bool
	}{
		{"above top", 0, 110, false},
		{"exactly at top", 0, 104, false},
		{"below top without tolerance", 0, 100, true},
		{"below top within tolerance", 5, 100, false},
		{"below top beyond tolerance", 5, 98, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.World.LandingTolerance = tc.tolerance
			fx := newCollisionFixture(cfg, box(80, groundY))
			fx.fallingAt(tc.prev, tc.prev-10)

			res := fx.resolve()

			if res.Fatal != tc.fatal {
				t.Errorf("Fatal = %v, expected %v", res.Fatal, tc.fatal)
			}
			if !tc.fatal && fx.actor.Actor().Y != groundY+44 {
				t.Errorf("landed at y=%f, expected %f", fx.actor.Actor().Y, groundY+44)
			}
		})
	}
}

func TestCollisionRestingOnTop(t *testing.T) {
	fx := newCollisionFixture(testConfig(), box(40, groundY), box(96, groundY))
	fx.actor.LandOn(groundY + 44)
	fx.actor.prevY = groundY + 44

	res := fx.resolve()

	if res.Fatal || res.Landed || res.FellOff {
		t.Errorf("resolution = %+v, expected a plain rest", res)
	}
	if !res.Collided {
		t.Error("resting actor should still touch the box")
	}
	if fx.actor.Mode() != ModeRunning {
		t.Errorf("mode = %v, expected running", fx.actor.Mode())
	}
}

func TestCollisionFallOffEdge(t *testing.T) {
	fx := newCollisionFixture(testConfig(), box(-40, groundY))
	fx.actor.LandOn(groundY + 44)

	res := fx.resolve()

	if !res.FellOff {
		t.Fatalf("resolution = %+v, expected a fall", res)
	}
	if fx.actor.Mode() != ModeJumpingDown || fx.actor.Actor().VY != -3 {
		t.Errorf("actor = %+v, expected falling with kick", fx.actor.Actor())
	}
}

func TestCollisionNoFallOnGround(t *testing.T) {
	fx := newCollisionFixture(testConfig())

	if res := fx.resolve(); res.FellOff {
		t.Error("actor on the ground cannot fall off")
	}
}

func TestCollisionCoinsAfterFatal(t *testing.T) {
	fx := newCollisionFixture(testConfig(), box(80, groundY), coin(85, groundY+44), box(88, groundY+44))

	res := fx.resolve()

	if !res.Fatal || res.Pickups != 1 {
		t.Errorf("resolution = %+v, expected fatal with one pickup", res)
	}
	if fx.audio.count(EffectCrash) != 1 {
		t.Errorf("crash sound played %d times, expected 1", fx.audio.count(EffectCrash))
	}
	if fx.field.Len() != 2 {
		t.Errorf("Len = %d, expected both boxes to remain", fx.field.Len())
	}
}

func TestCollisionIgnoredAfterGameOver(t *testing.T) {
	fx := newCollisionFixture(testConfig(), coin(70, groundY))
	fx.actor.GameOver()

	res := fx.resolve()

	if res != (Resolution{}) || fx.field.Len() != 1 {
		t.Errorf("resolution = %+v, Len = %d; expected nothing to happen", res, fx.field.Len())
	}
}

func TestCollisionJumpFromBoxTop(t *testing.T) {
	top := groundY + 44
	fx := newCollisionFixture(testConfig(), box(40, groundY), box(96, groundY))
	fx.actor.LandOn(top)

	fx.actor.Press()
	fx.actor.Step(frame)
	res := fx.resolve()

	a := fx.actor.Actor()
	if res.Landed || res.Fatal {
		t.Fatalf("resolution = %+v, the jump should leave the box", res)
	}
	if a.Mode != ModeJumpingUp || a.VY != 4.5 || a.Y != top {
		t.Fatalf("actor after the jump frame = %+v", a)
	}
	if fx.audio.count(EffectJump) != 1 {
		t.Errorf("jump sound played %d times, expected 1", fx.audio.count(EffectJump))
	}

	for i := 0; i < 10; i++ {
		fx.actor.Step(frame)
		fx.resolve()
	}
	if a := fx.actor.Actor(); a.Y <= top || a.Mode != ModeJumpingUp {
		t.Errorf("actor should still be rising above the box, got %+v", a)
	}
}

func TestCollisionRisingIntoBoxSideIsFatal(t *testing.T) {
	fx := newCollisionFixture(testConfig(), box(80, groundY+44))
	fx.actor.actor.Mode = ModeJumpingUp
	fx.actor.actor.VY = 4.5
	fx.actor.actor.Y = groundY + 30
	fx.actor.prevY = groundY + 26

	if res := fx.resolve(); !res.Fatal {
		t.Errorf("resolution = %+v, rising into a box below its top should be fatal", res)
	}
}
