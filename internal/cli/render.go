package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// colorStyles paints one facelet per color as a two-cell block.
var colorStyles = map[puzzle.Color]lipgloss.Style{
	puzzle.White:  facelet("255"),
	puzzle.Yellow: facelet("226"),
	puzzle.Green:  facelet("34"),
	puzzle.Blue:   facelet("27"),
	puzzle.Red:    facelet("160"),
	puzzle.Orange: facelet("208"),
}

func facelet(bg string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(bg))
}

const cell = "  "

// renderNet draws the unfolded puzzle with U above, D below and L F R B in
// the middle band.
func renderNet(net puzzle.Net) string {
	n := len(net[puzzle.F])
	indent := strings.Repeat(cell, n) + " "

	var b strings.Builder
	for row := 0; row < n; row++ {
		b.WriteString(indent)
		b.WriteString(renderRow(net[puzzle.U][row]))
		b.WriteString("\n")
	}
	for row := 0; row < n; row++ {
		for i, face := range []puzzle.Face{puzzle.L, puzzle.F, puzzle.R, puzzle.B} {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(renderRow(net[face][row]))
		}
		b.WriteString("\n")
	}
	for row := 0; row < n; row++ {
		b.WriteString(indent)
		b.WriteString(renderRow(net[puzzle.D][row]))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRow(colors []puzzle.Color) string {
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(colorStyles[c].Render(cell))
	}
	return b.String()
}
