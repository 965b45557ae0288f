package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/papapumpkin/unionviz/internal/ansi"
	"github.com/papapumpkin/unionviz/internal/layout"
	"github.com/papapumpkin/unionviz/internal/scene"
)

// CellKind tells a colorizer what a canvas cell shows.
type CellKind uint8

// Cell kinds reported by At.
const (
	CellEmpty CellKind = iota
	CellEdge
	CellNode
	CellRoot
	CellActive
)

// Cell is one character of the canvas.
type Cell struct {
	Rune rune
	Kind CellKind
}

// maxLabel is the longest value shown inside a node marker.
const maxLabel = 6

// Canvas rasterizes a scene snapshot onto a character grid. Canvas units
// are scaled to the grid, so the same snapshot draws at any terminal size.
// Roots are drawn as [value], other nodes as (value), and parent links as
// dotted lines.
type Canvas struct {
	Cols  int
	Rows  int
	cells [][]Cell
}

// NewCanvas creates an empty grid of cols x rows.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: max(cols, 1), Rows: max(rows, 1)}
	c.Clear()
	return c
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	c.cells = make([][]Cell, c.Rows)
	for y := range c.cells {
		row := make([]Cell, c.Cols)
		for x := range row {
			row[x] = Cell{Rune: ' '}
		}
		c.cells[y] = row
	}
}

// At returns the cell at column x, row y. Out-of-range cells are empty.
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.Cols || y >= c.Rows {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// Draw clears the grid and renders snap onto it: edges first, then nodes on top.
func (c *Canvas) Draw(snap scene.Snapshot) {
	c.Clear()
	pos := make(map[int][2]int, len(snap.Nodes))
	for _, n := range snap.Nodes {
		pos[n.ID] = c.project(n.Position, snap.Bounds)
	}
	for _, e := range snap.Edges {
		from, ok1 := pos[e.Child]
		to, ok2 := pos[e.Parent]
		if ok1 && ok2 {
			c.line(from, to)
		}
	}
	for _, n := range snap.Nodes {
		kind := CellNode
		open, shut := "(", ")"
		if n.Parent == n.ID {
			kind = CellRoot
			open, shut = "[", "]"
		}
		if n.Status == scene.StatusActive {
			kind = CellActive
		}
		c.label(pos[n.ID], open+truncate(n.Value, maxLabel)+shut, kind)
	}
}

// project maps a canvas-unit point to a grid cell.
func (c *Canvas) project(v layout.Vec, b layout.Bounds) [2]int {
	x, y := 0, 0
	if b.Width > 0 {
		x = int(v.X / b.Width * float64(c.Cols))
	}
	if b.Height > 0 {
		y = int(v.Y / b.Height * float64(c.Rows))
	}
	return [2]int{clamp(x, 0, c.Cols-1), clamp(y, 0, c.Rows-1)}
}

// line plots a Bresenham line of edge dots between two cells.
func (c *Canvas) line(a, b [2]int) {
	x0, y0, x1, y1 := a[0], a[1], b[0], b[1]
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errTerm := dx + dy
	for {
		c.set(x0, y0, Cell{Rune: '·', Kind: CellEdge})
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errTerm
		if e2 >= dy {
			errTerm += dy
			x0 += sx
		}
		if e2 <= dx {
			errTerm += dx
			y0 += sy
		}
	}
}

// label writes text centered on p, shifted to stay inside the grid.
func (c *Canvas) label(p [2]int, text string, kind CellKind) {
	runes := []rune(text)
	start := p[0] - len(runes)/2
	start = clamp(start, 0, max(c.Cols-len(runes), 0))
	for i, r := range runes {
		c.set(start+i, p[1], Cell{Rune: r, Kind: kind})
	}
}

func (c *Canvas) set(x, y int, cell Cell) {
	if x < 0 || y < 0 || x >= c.Cols || y >= c.Rows {
		return
	}
	c.cells[y][x] = cell
}

// Lines returns the grid as plain text rows with trailing spaces trimmed.
func (c *Canvas) Lines() []string {
	out := make([]string, c.Rows)
	for y, row := range c.cells {
		var sb strings.Builder
		for _, cell := range row {
			sb.WriteRune(cell.Rune)
		}
		out[y] = strings.TrimRight(sb.String(), " ")
	}
	return out
}

// Render returns the grid as a string, colored with ANSI codes when
// useColor is set: roots cyan, nodes blue, active nodes red, edges gray.
func (c *Canvas) Render(useColor bool) string {
	if !useColor {
		return strings.Join(c.Lines(), "\n")
	}
	var sb strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			s := string(cell.Rune)
			switch cell.Kind {
			case CellEdge:
				s = ansi.Wrap(s, ansi.Gray)
			case CellNode:
				s = ansi.Wrap(s, ansi.Blue, ansi.Bold)
			case CellRoot:
				s = ansi.Wrap(s, ansi.Cyan, ansi.Bold)
			case CellActive:
				s = ansi.Wrap(s, ansi.Red, ansi.Bold)
			}
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
