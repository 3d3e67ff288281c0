package runner

import "github.com/vovakirdan/parkour/internal/core"

// Kind tags a world object. CollisionResolver switches on it exhaustively.
type Kind int

const (
	KindCoin Kind = iota
	KindBox
	KindAnvil
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCoin:
		return "coin"
	case KindBox:
		return "box"
	case KindAnvil:
		return "anvil"
	default:
		return "unknown"
	}
}

// WorldObject is a pickup or obstacle scrolling through the world.
type WorldObject struct {
	Kind  Kind
	X, Y  float64 // Bottom-left corner in world pixels
	W, H  float64
	Phase int // Animation phase offset, used by coins
}

// Bounds returns the object's bounding box.
func (o WorldObject) Bounds() core.RectF {
	return core.NewRectF(o.X, o.Y, o.W, o.H)
}
