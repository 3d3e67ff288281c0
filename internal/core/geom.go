// Package core provides fundamental types and utilities shared by the runner
// simulation and its frontends. It has no external dependencies (especially no
// Bubble Tea or ebiten) so that game logic stays pure and testable.
package core

// Rect is an integer axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// RectF is a world-space rectangle. Unlike Rect it lives in a y-up coordinate
// system: (X, Y) is the bottom-left corner.
type RectF struct {
	X, Y float64
	W, H float64
}

// NewRectF creates a world rectangle from its bottom-left corner and size.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Top returns the y-coordinate of the top edge.
func (r RectF) Top() float64 {
	return r.Y + r.H
}

// Touches reports whether two rectangles overlap or share an edge.
// Shared edges count: a body resting on another keeps touching it.
func (r RectF) Touches(other RectF) bool {
	return !(r.Right() < other.X || other.Right() < r.X ||
		r.Top() < other.Y || other.Top() < r.Y)
}

// InsetX shrinks the rectangle horizontally: left moves right by left and the
// width shrinks by width.
func (r RectF) InsetX(left, width float64) RectF {
	r.X += left
	r.W -= width
	if r.W < 0 {
		r.W = 0
	}
	return r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
