package unionfind

// Edge connects a non-root element to its parent.
type Edge struct {
	Child  int
	Parent int
}

// DeriveEdges projects the parent relation into an edge list, one edge per
// non-root element, ordered by the child's creation order.
func DeriveEdges(f *Forest) []Edge {
	edges := make([]Edge, 0, len(f.order))
	for _, id := range f.order {
		e := f.elements[id]
		if e.Parent == id {
			continue
		}
		edges = append(edges, Edge{Child: id, Parent: e.Parent})
	}
	return edges
}
