package runner

import (
	"github.com/vovakirdan/parkour/internal/config"
	"github.com/vovakirdan/parkour/internal/core"
)

// Mode is the actor's state machine state.
type Mode int

const (
	ModeRunning Mode = iota
	ModeJumpingUp
	ModeJumpingDown
	ModeCrouch
	ModeGameOver
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "running"
	case ModeJumpingUp:
		return "jumping-up"
	case ModeJumpingDown:
		return "jumping-down"
	case ModeCrouch:
		return "crouch"
	case ModeGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// ButtonState is the jump button position.
type ButtonState int

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

// Button tracks the jump button. Holding it reduces gravity while rising,
// up to the configured hold cap.
type Button struct {
	State           ButtonState
	PressedDuration float64
}

// Actor is the runner's physical state. Y is the bottom edge; VY is in
// pixels per reference frame, positive up.
type Actor struct {
	X, Y       float64
	W, H       float64
	VY         float64
	Mode       Mode
	AccelTime  float64 // Seconds since the current jump phase began
	CrouchTime float64 // Seconds spent in the current crouch
}

// ActorController owns the actor and is the only code that changes its mode.
type ActorController struct {
	physics  config.PhysicsConfig
	body     config.ActorConfig
	features config.FeatureFlags
	groundY  float64

	actor        Actor
	prevY        float64
	button       Button
	pendingPress bool

	appearance Appearance
	audio      AudioSink
}

// NewActorController places a running actor on the ground.
func NewActorController(cfg config.RunnerConfig, appearance Appearance, audio AudioSink) *ActorController {
	if appearance == nil {
		appearance = nopAppearance{}
	}
	if audio == nil {
		audio = nopAudio{}
	}

	c := &ActorController{
		physics:    cfg.Physics,
		body:       cfg.Actor,
		features:   cfg.Features,
		groundY:    cfg.World.GroundY,
		appearance: appearance,
		audio:      audio,
		actor: Actor{
			X: cfg.Actor.X,
			Y: cfg.World.GroundY,
			W: cfg.Actor.Width,
			H: cfg.Actor.Height,
		},
	}
	c.prevY = c.actor.Y
	c.run()
	return c
}

// Press signals the jump button going down. A jump fires on the next Step if
// the actor is running or crouching; otherwise the edge is dropped.
func (c *ActorController) Press() {
	if c.actor.Mode == ModeGameOver || c.button.State == ButtonPressed {
		return
	}
	c.button = Button{State: ButtonPressed}
	c.pendingPress = true
}

// Release signals the jump button going up.
func (c *ActorController) Release() {
	c.button.State = ButtonReleased
}

// Step integrates the actor over dt seconds. Non-positive dt is a no-op.
func (c *ActorController) Step(dt float64) {
	if c.actor.Mode == ModeGameOver || !(dt > 0) {
		return
	}
	c.prevY = c.actor.Y

	if c.button.State == ButtonPressed {
		c.button.PressedDuration += dt
		if c.button.PressedDuration > c.body.ButtonMaxTime {
			c.button.State = ButtonReleased
		}
	}

	if c.pendingPress {
		c.pendingPress = false
		if c.actor.Mode == ModeRunning || c.actor.Mode == ModeCrouch {
			c.jump()
			return
		}
	}

	scale := dt * c.physics.ReferenceFPS
	a := &c.actor

	switch a.Mode {
	case ModeJumpingUp:
		a.AccelTime += dt
		g := c.physics.Gravity
		if c.features.ButtonHold && c.button.State == ButtonPressed {
			g *= c.physics.HoldGravityFactor
		}
		a.VY -= g * a.AccelTime * scale
		a.Y += a.VY * scale
		if a.VY <= 0 {
			c.goDown(false)
		}

	case ModeJumpingDown:
		a.AccelTime += dt
		a.VY -= c.physics.Gravity * a.AccelTime * scale
		a.Y += a.VY * scale
		if a.Y <= c.groundY {
			a.Y = c.groundY
			if c.features.Crouch && a.VY < c.physics.CrouchThreshold {
				c.crouch()
			} else {
				c.run()
			}
		}

	case ModeCrouch:
		a.CrouchTime += dt
		if a.CrouchTime > c.body.CrouchDwellTime {
			c.run()
		}
	}

	if a.Y < c.groundY {
		a.Y = c.groundY
	}
}

// GameOver ends the run: animation stops and no further input or physics is
// processed.
func (c *ActorController) GameOver() {
	if c.actor.Mode == ModeGameOver {
		return
	}
	c.actor.Mode = ModeGameOver
	c.pendingPress = false
	c.appearance.SetAppearance(AnimStopped)
}

// LandOn puts the actor on a surface whose top is at y and makes it run.
func (c *ActorController) LandOn(y float64) {
	if c.actor.Mode == ModeGameOver {
		return
	}
	c.actor.Y = y
	if c.actor.Mode == ModeRunning {
		c.actor.VY = 0
		return
	}
	c.run()
}

// FallOff starts a fall from a running state, used when the surface under the
// actor scrolls away.
func (c *ActorController) FallOff() {
	if c.actor.Mode != ModeRunning {
		return
	}
	c.goDown(true)
}

// Actor returns a copy of the actor state.
func (c *ActorController) Actor() Actor {
	return c.actor
}

// Mode returns the current state.
func (c *ActorController) Mode() Mode {
	return c.actor.Mode
}

// Button returns the jump button state.
func (c *ActorController) Button() Button {
	return c.button
}

// PrevBottom returns the actor's bottom edge at the start of the last frame.
func (c *ActorController) PrevBottom() float64 {
	return c.prevY
}

// Bounds returns the actor's full bounding box.
func (c *ActorController) Bounds() core.RectF {
	return core.NewRectF(c.actor.X, c.actor.Y, c.actor.W, c.actor.H)
}

// Hitbox returns the bounding box inset horizontally, so that grazing a
// sprite's transparent edge does not count as a hit.
func (c *ActorController) Hitbox() core.RectF {
	return c.Bounds().InsetX(c.body.HitboxInsetLeft, c.body.HitboxInsetWidth)
}

func (c *ActorController) jump() {
	c.actor.Mode = ModeJumpingUp
	c.actor.VY = c.physics.JumpVelocity
	c.actor.AccelTime = 0
	c.button.PressedDuration = 0
	c.appearance.SetAppearance(AnimJumpUp)
	c.audio.PlayEffect(EffectJump)
}

func (c *ActorController) goDown(kick bool) {
	c.actor.Mode = ModeJumpingDown
	c.actor.AccelTime = 0
	if kick && c.actor.VY >= 0 {
		c.actor.VY = c.physics.FallKickVelocity
	}
	c.appearance.SetAppearance(AnimJumpDown)
}

func (c *ActorController) run() {
	c.actor.Mode = ModeRunning
	c.actor.VY = 0
	c.actor.AccelTime = 0
	c.appearance.SetAppearance(AnimRun)
}

func (c *ActorController) crouch() {
	c.actor.Mode = ModeCrouch
	c.actor.VY = 0
	c.actor.CrouchTime = 0
	c.appearance.SetAppearance(AnimCrouch)
}
