package core

// Color is the foreground color of a screen cell, mapped to ANSI 256-color
// codes by the terminal frontend.
type Color uint8

// Palette used by the runner projection.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
)

// Cell is a single character position on a Screen.
type Cell struct {
	Rune  rune
	Color Color
}
