package runner

// LayerPair is two identical images tiled end to end. When one scrolls fully
// past the left edge it jumps two widths to the right, behind its partner.
type LayerPair struct {
	Width       float64
	SpeedFactor float64
	Pos         [2]float64 // Left edge of each image
}

// NewLayerPair creates a pair with the first image at x=0 and the second
// right after it.
func NewLayerPair(width, speedFactor float64) LayerPair {
	return LayerPair{
		Width:       width,
		SpeedFactor: speedFactor,
		Pos:         [2]float64{0, width},
	}
}

// Advance scrolls the pair left by dx scaled by the pair's speed factor.
// The wrap is relative, so frame-time jitter never opens a gap.
func (p *LayerPair) Advance(dx float64) {
	d := dx * p.SpeedFactor
	for i := range p.Pos {
		p.Pos[i] -= d
		for p.Pos[i] < -p.Width {
			p.Pos[i] += p.Width * 2
		}
	}
}

// Seam returns the x coordinate where the two images meet.
func (p LayerPair) Seam() float64 {
	if p.Pos[0] < p.Pos[1] {
		return p.Pos[1]
	}
	return p.Pos[0]
}

// ScrollPlane holds the background and ground layer pairs.
type ScrollPlane struct {
	Background LayerPair
	Ground     LayerPair
}

// NewScrollPlane creates both layer pairs at their start positions.
func NewScrollPlane(bgWidth, bgFactor, groundWidth, groundFactor float64) *ScrollPlane {
	return &ScrollPlane{
		Background: NewLayerPair(bgWidth, bgFactor),
		Ground:     NewLayerPair(groundWidth, groundFactor),
	}
}

// Advance scrolls both pairs by dt*speed pixels, each at its own factor.
func (s *ScrollPlane) Advance(dt, speed float64) {
	if !(dt > 0) {
		return
	}
	dx := dt * speed
	s.Ground.Advance(dx)
	s.Background.Advance(dx)
}
