package core

import "strings"

var blank = Cell{Rune: ' '}

// Screen is a grid of colored terminal cells. Games project onto it; the
// terminal frontend turns it into styled text. Row 0 is the top line.
type Screen struct {
	width, height int
	cells         []Cell // Row-major
}

// NewScreen returns a blank screen.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the number of columns.
func (s *Screen) Width() int { return s.width }

// Height returns the number of rows.
func (s *Screen) Height() int { return s.height }

// Resize changes the dimensions and blanks the screen. The backing buffer
// is reused when it is large enough.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	n := width * height
	if cap(s.cells) < n {
		s.cells = make([]Cell, n)
	}
	s.cells = s.cells[:n]
	s.width, s.height = width, height
	s.Clear()
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Set places an uncolored rune. Out-of-bounds writes are dropped.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored places a colored rune. Out-of-bounds writes are dropped.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space outside the screen.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank outside the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blank
}

// DrawText writes uncolored text starting at (x, y), one rune per cell.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes text starting at (x, y), one rune per cell, clipped
// at the edges.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawRect fills r.
func (s *Screen) DrawRect(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		s.DrawHLine(r.X, y, r.W, fill, c)
	}
}

// DrawBox outlines r with box-drawing runes.
func (s *Screen) DrawBox(r Rect) {
	right, bottom := r.Right()-1, r.Bottom()-1
	s.DrawHLine(r.X+1, r.Y, r.W-2, '─', ColorDefault)
	s.DrawHLine(r.X+1, bottom, r.W-2, '─', ColorDefault)
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, '│')
		s.Set(right, y, '│')
	}
	s.Set(r.X, r.Y, '┌')
	s.Set(right, r.Y, '┐')
	s.Set(r.X, bottom, '└')
	s.Set(right, bottom, '┘')
}

// DrawHLine draws length copies of r to the right of (x, y).
func (s *Screen) DrawHLine(x, y, length int, r rune, c Color) {
	for i := 0; i < length; i++ {
		s.SetColored(x+i, y, r, c)
	}
}

// Row returns row y as plain text; rows outside the screen are blank.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the whole screen as plain text, rows separated by newlines.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
