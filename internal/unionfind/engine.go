package unionfind

import "fmt"

// Options selects the heuristics the engine applies. Both default to off.
type Options struct {
	PathCompression bool
	UnionByRank     bool
}

// Reparent records one parent reassignment made by path compression.
type Reparent struct {
	ID   int
	From int
	To   int
}

// Compression describes a compressing find after it committed. Path lists
// every element visited from the queried id up to and including the root;
// Reparented lists only the elements whose parent actually changed.
type Compression struct {
	Root       int
	Path       []int
	Reparented []Reparent
}

// Merge describes a committed union: Child (a former root) now points at
// Parent, whose rank is ParentRank after the merge.
type Merge struct {
	Child      int
	Parent     int
	ParentRank int
}

// Hooks are optional callbacks fired after a state transition commits.
// Any of them may be nil.
type Hooks struct {
	OnCompress    func(Compression)
	OnMerge       func(Merge)
	OnRecalculate func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithPathCompression sets the initial path compression flag.
func WithPathCompression(on bool) Option {
	return func(e *Engine) { e.opts.PathCompression = on }
}

// WithUnionByRank sets the initial union-by-rank flag.
func WithUnionByRank(on bool) Option {
	return func(e *Engine) { e.opts.UnionByRank = on }
}

// WithHooks installs transition callbacks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// Engine runs makeSet/find/union over a Forest.
type Engine struct {
	forest *Forest
	opts   Options
	hooks  Hooks
}

// New creates an engine over an empty forest.
func New(opts ...Option) *Engine {
	e := &Engine{forest: NewForest()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Forest exposes the underlying store for read-only helpers such as
// DeriveEdges. Callers must not mutate it.
func (e *Engine) Forest() *Forest {
	return e.forest
}

// Options returns the current heuristic settings.
func (e *Engine) Options() Options {
	return e.opts
}

// SetPathCompression toggles path compression for subsequent finds.
func (e *Engine) SetPathCompression(on bool) {
	e.opts.PathCompression = on
}

// SetUnionByRank toggles the merge strategy for subsequent unions.
func (e *Engine) SetUnionByRank(on bool) {
	e.opts.UnionByRank = on
}

// Reset discards the whole forest. The id counter restarts at 0.
func (e *Engine) Reset() {
	e.forest = NewForest()
}

// Len returns the number of elements.
func (e *Engine) Len() int {
	return e.forest.Len()
}

// Elements returns copies of every element in creation order.
func (e *Engine) Elements() []Element {
	return e.forest.Elements()
}

// Edges returns the current parent links.
func (e *Engine) Edges() []Edge {
	return DeriveEdges(e.forest)
}

// MakeSet adds a new singleton holding value and returns its id.
func (e *Engine) MakeSet(value string) int {
	return e.forest.add(value)
}

// Rank returns the element's rank field: the merge weight until the first
// compressing find, its depth from the root afterwards.
func (e *Engine) Rank(id int) (int, error) {
	el, ok := e.forest.element(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return el.Rank, nil
}

// Depth returns the number of parent hops from id to its root without
// touching the forest.
func (e *Engine) Depth(id int) (int, error) {
	if !e.forest.Contains(id) {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	_, hops := e.forest.root(id)
	return hops, nil
}

// Find returns the root of the set containing id. With path compression on,
// every element on the walked path is re-pointed at the root and the ranks
// of the whole forest are recalculated as depths. Otherwise Find is read-only.
func (e *Engine) Find(id int) (int, error) {
	if !e.forest.Contains(id) {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	path := []int{id}
	cur := id
	for {
		parent := e.forest.elements[cur].Parent
		if parent == cur {
			break
		}
		cur = parent
		path = append(path, cur)
	}
	root := cur

	if !e.opts.PathCompression {
		return root, nil
	}

	var moved []Reparent
	for _, n := range path {
		el := e.forest.elements[n]
		if el.Parent != root {
			moved = append(moved, Reparent{ID: n, From: el.Parent, To: root})
			el.Parent = root
		}
	}
	RecalculateRanks(e.forest)

	if e.hooks.OnCompress != nil {
		e.hooks.OnCompress(Compression{Root: root, Path: path, Reparented: moved})
	}
	if e.hooks.OnRecalculate != nil {
		e.hooks.OnRecalculate()
	}
	return root, nil
}

// Union merges the sets containing x and y. It reports false with a nil
// error when both are already in the same set. Both ids are validated before
// anything is mutated. The merge decision reads ranks after both finds, so
// any recalculation they trigger is visible to it.
func (e *Engine) Union(x, y int) (bool, error) {
	if !e.forest.Contains(x) {
		return false, fmt.Errorf("%w: %d", ErrNotFound, x)
	}
	if !e.forest.Contains(y) {
		return false, fmt.Errorf("%w: %d", ErrNotFound, y)
	}

	rx, err := e.Find(x)
	if err != nil {
		return false, err
	}
	ry, err := e.Find(y)
	if err != nil {
		return false, err
	}
	if rx == ry {
		return false, nil
	}

	ex := e.forest.elements[rx]
	ey := e.forest.elements[ry]

	var m Merge
	if e.opts.UnionByRank {
		switch {
		case ex.Rank > ey.Rank:
			ey.Parent = rx
			m = Merge{Child: ry, Parent: rx, ParentRank: ex.Rank}
		case ex.Rank < ey.Rank:
			ex.Parent = ry
			m = Merge{Child: rx, Parent: ry, ParentRank: ey.Rank}
		default:
			ey.Parent = rx
			ex.Rank++
			m = Merge{Child: ry, Parent: rx, ParentRank: ex.Rank}
		}
	} else {
		// Fixed direction: y's root always goes under x's root.
		ey.Parent = rx
		ex.Rank = max(ex.Rank, ey.Rank+1)
		m = Merge{Child: ry, Parent: rx, ParentRank: ex.Rank}
	}

	if e.hooks.OnMerge != nil {
		e.hooks.OnMerge(m)
	}
	return true, nil
}

// Connected reports whether x and y share a root. It goes through Find, so
// it compresses when compression is on.
func (e *Engine) Connected(x, y int) (bool, error) {
	rx, err := e.Find(x)
	if err != nil {
		return false, err
	}
	ry, err := e.Find(y)
	if err != nil {
		return false, err
	}
	return rx == ry, nil
}

// Components groups element ids by root, members in creation order. It
// never compresses.
func (e *Engine) Components() map[int][]int {
	groups := make(map[int][]int)
	for _, id := range e.forest.order {
		root, _ := e.forest.root(id)
		groups[root] = append(groups[root], id)
	}
	return groups
}
