package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/papapumpkin/unionviz/internal/scene"
)

// Rows of the panel not used by the scrolling table: border top and bottom,
// title, column header and the selected-node detail line.
const panelChromeRows = 5

// NodePanel is the side table listing every element with its parent and
// rank. One row is selected; the line under the table describes it.
type NodePanel struct {
	viewport viewport.Model
	nodes    []scene.Node
	Cursor   int
	Detail   string // description of the selected node, set by the model
}

// NewNodePanel creates a panel with the given outer height.
func NewNodePanel(height int) NodePanel {
	vp := viewport.New(PanelWidth-4, max(height-panelChromeRows, 1))
	vp.SetContent("")
	return NodePanel{viewport: vp}
}

// SetHeight updates the outer height of the panel.
func (p *NodePanel) SetHeight(height int) {
	p.viewport.Height = max(height-panelChromeRows, 1)
	p.ensureVisible()
}

// SetNodes replaces the listed nodes, keeping the cursor in range.
func (p *NodePanel) SetNodes(nodes []scene.Node) {
	p.nodes = nodes
	if p.Cursor >= len(nodes) {
		p.Cursor = max(len(nodes)-1, 0)
	}
	p.viewport.SetContent(p.renderRows())
	p.ensureVisible()
}

// Selected returns the node under the cursor.
func (p NodePanel) Selected() (scene.Node, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.nodes) {
		return scene.Node{}, false
	}
	return p.nodes[p.Cursor], true
}

// MoveUp moves the cursor one row up.
func (p *NodePanel) MoveUp() {
	if p.Cursor > 0 {
		p.Cursor--
		p.viewport.SetContent(p.renderRows())
		p.ensureVisible()
	}
}

// MoveDown moves the cursor one row down.
func (p *NodePanel) MoveDown() {
	if p.Cursor < len(p.nodes)-1 {
		p.Cursor++
		p.viewport.SetContent(p.renderRows())
		p.ensureVisible()
	}
}

// ensureVisible scrolls the viewport so the cursor row is on screen.
func (p *NodePanel) ensureVisible() {
	top := p.viewport.YOffset
	bottom := top + p.viewport.Height - 1
	switch {
	case p.Cursor < top:
		p.viewport.SetYOffset(p.Cursor)
	case p.Cursor > bottom:
		p.viewport.SetYOffset(p.Cursor - p.viewport.Height + 1)
	}
}

func (p NodePanel) renderRows() string {
	rows := make([]string, 0, len(p.nodes))
	for i, n := range p.nodes {
		parent := fmt.Sprintf("%d", n.Parent)
		if n.Parent == n.ID {
			parent = "root"
		}
		row := fmt.Sprintf("%3d  %-10s %6s %4d", n.ID, TruncateWithEllipsis(n.Value, 10), parent, n.Rank)
		style := styleRowNormal
		if n.Status == scene.StatusActive {
			style = styleRowActive
		}
		indicator := " "
		if i == p.Cursor {
			indicator = styleSelectionIndicator.Render(selectionIndicator)
			if n.Status != scene.StatusActive {
				style = styleRowSelected
			}
		}
		rows = append(rows, indicator+" "+style.Render(row))
	}
	return strings.Join(rows, "\n")
}

// View renders the bordered panel.
func (p NodePanel) View() string {
	var b strings.Builder
	b.WriteString(stylePanelTitle.Render(fmt.Sprintf("nodes (%d)", len(p.nodes))))
	b.WriteString("\n")
	b.WriteString(stylePanelHeader.Render(fmt.Sprintf("  %3s  %-10s %6s %4s", "id", "value", "parent", "rank")))
	b.WriteString("\n")
	if len(p.nodes) == 0 {
		content := styleDetailDim.Render("  (empty forest)")
		b.WriteString(content + strings.Repeat("\n", max(p.viewport.Height-1, 0)))
	} else {
		b.WriteString(p.viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(styleDetailDim.Render(TruncateWithEllipsis(p.Detail, PanelWidth-4)))
	return stylePanelBorder.Width(PanelWidth - 2).Render(b.String())
}
