package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/parkour/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorBrown:        lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
}

func styleFor(c core.Color) lipgloss.Style {
	if st, ok := colorStyles[c]; ok {
		return st
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is emitted as runs of same-colored cells, so a mostly empty sky
// costs one escape sequence per row.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y)
	}
	return strings.Join(rows, "\n")
}

func renderRow(s *core.Screen, y int) string {
	var row, span strings.Builder
	color := core.ColorDefault

	flush := func() {
		if span.Len() == 0 {
			return
		}
		if color == core.ColorDefault {
			row.WriteString(span.String())
		} else {
			row.WriteString(styleFor(color).Render(span.String()))
		}
		span.Reset()
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		// Blanks carry no color, so they extend whatever span is open.
		if cell.Color != color && cell.Rune != ' ' {
			flush()
			color = cell.Color
		}
		span.WriteRune(cell.Rune)
	}
	flush()
	return row.String()
}
