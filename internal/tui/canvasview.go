package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/unionviz/internal/ui"
)

// renderCanvas colors a drawn canvas with the TUI palette. Runs of cells
// of the same kind are styled together.
func renderCanvas(c *ui.Canvas) string {
	lines := make([]string, c.Rows)
	for y := 0; y < c.Rows; y++ {
		var b, run strings.Builder
		kind := ui.CellEmpty
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(cellStyle(kind).Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < c.Cols; x++ {
			cell := c.At(x, y)
			if cell.Kind != kind {
				flush()
				kind = cell.Kind
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func cellStyle(kind ui.CellKind) lipgloss.Style {
	switch kind {
	case ui.CellEdge:
		return styleCellEdge
	case ui.CellNode:
		return styleCellNode
	case ui.CellRoot:
		return styleCellRoot
	case ui.CellActive:
		return styleCellActive
	}
	return lipgloss.NewStyle()
}
