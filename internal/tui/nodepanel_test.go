package tui

import (
	"strings"
	"testing"

	"github.com/papapumpkin/unionviz/internal/scene"
)

func panelNodes(n int) []scene.Node {
	nodes := make([]scene.Node, n)
	for i := range nodes {
		nodes[i] = scene.Node{ID: i, Value: string(rune('A' + i%26)), Parent: 0}
	}
	return nodes
}

func TestNodePanel_Cursor(t *testing.T) {
	t.Parallel()

	p := NewNodePanel(10)
	p.SetNodes(panelNodes(3))

	p.MoveUp()
	if p.Cursor != 0 {
		t.Errorf("cursor moved above first row: %d", p.Cursor)
	}
	p.MoveDown()
	p.MoveDown()
	p.MoveDown()
	if p.Cursor != 2 {
		t.Errorf("cursor = %d, want 2 (clamped at last row)", p.Cursor)
	}
	n, ok := p.Selected()
	if !ok || n.ID != 2 {
		t.Errorf("Selected() = %+v, %v; want node 2", n, ok)
	}

	p.SetNodes(panelNodes(1))
	if p.Cursor != 0 {
		t.Errorf("cursor not clamped after shrink: %d", p.Cursor)
	}
}

func TestNodePanel_Empty(t *testing.T) {
	t.Parallel()

	p := NewNodePanel(10)
	p.SetNodes(nil)
	if _, ok := p.Selected(); ok {
		t.Error("empty panel should have no selection")
	}
	if !strings.Contains(p.View(), "empty forest") {
		t.Errorf("expected empty hint, got: %s", p.View())
	}
}

func TestNodePanel_ScrollsToCursor(t *testing.T) {
	t.Parallel()

	p := NewNodePanel(10) // viewport of 5 rows
	p.SetNodes(panelNodes(20))
	for i := 0; i < 12; i++ {
		p.MoveDown()
	}
	if p.viewport.YOffset == 0 {
		t.Error("viewport should scroll to keep the cursor visible")
	}
	top := p.viewport.YOffset
	if p.Cursor < top || p.Cursor >= top+p.viewport.Height {
		t.Errorf("cursor %d outside viewport [%d, %d)", p.Cursor, top, top+p.viewport.Height)
	}
}

func TestNodePanel_RootMarker(t *testing.T) {
	t.Parallel()

	p := NewNodePanel(10)
	p.SetNodes([]scene.Node{
		{ID: 0, Value: "A", Parent: 0, Rank: 1},
		{ID: 1, Value: "B", Parent: 0},
	})
	view := p.View()
	if !strings.Contains(view, "root") {
		t.Errorf("expected root marker, got: %s", view)
	}
	if !strings.Contains(view, "nodes (2)") {
		t.Errorf("expected node count in title, got: %s", view)
	}
}
