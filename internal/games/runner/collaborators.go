package runner

// AnimationID names an actor appearance. The core only ever sets appearances;
// it never waits for an animation to finish.
type AnimationID int

const (
	AnimRun AnimationID = iota
	AnimJumpUp
	AnimJumpDown
	AnimCrouch
	AnimStopped // All animation halted (game over)
)

// String returns the animation name.
func (a AnimationID) String() string {
	switch a {
	case AnimRun:
		return "run"
	case AnimJumpUp:
		return "jump-up"
	case AnimJumpDown:
		return "jump-down"
	case AnimCrouch:
		return "crouch"
	case AnimStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// EffectID names a fire-and-forget sound effect.
type EffectID int

const (
	EffectJump EffectID = iota
	EffectPickup
	EffectCrash
)

// String returns the effect name.
func (e EffectID) String() string {
	switch e {
	case EffectJump:
		return "jump"
	case EffectPickup:
		return "pickup"
	case EffectCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// Appearance receives the actor's animation on every state transition.
type Appearance interface {
	SetAppearance(id AnimationID)
}

// AudioSink plays sound effects. Implementations must not block.
type AudioSink interface {
	PlayEffect(id EffectID)
}

// ScoreSink receives the running distance every frame and each pickup.
type ScoreSink interface {
	ReportDistance(pixels int)
	ReportPickup()
}

// PatternSource supplies patterns when the obstacle field runs empty.
type PatternSource interface {
	IntroPattern() *Pattern
	RandomPattern() *Pattern
}

type nopAppearance struct{}

func (nopAppearance) SetAppearance(AnimationID) {}

type nopAudio struct{}

func (nopAudio) PlayEffect(EffectID) {}

type nopScore struct{}

func (nopScore) ReportDistance(int) {}
func (nopScore) ReportPickup()      {}
