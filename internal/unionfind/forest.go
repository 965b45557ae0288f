package unionfind

// Element is one member of the forest. Parent == ID iff the element is a root.
type Element struct {
	ID     int
	Value  string
	Parent int
	Rank   int
}

// IsRoot reports whether the element is the representative of its set.
func (e Element) IsRoot() bool {
	return e.Parent == e.ID
}

// Forest holds the element table. Ids are handed out by a monotonically
// increasing counter and never reused; the table itself is a sparse map.
type Forest struct {
	elements map[int]*Element
	order    []int // creation order
	next     int
}

// NewForest creates an empty forest whose first id is 0.
func NewForest() *Forest {
	return &Forest{
		elements: make(map[int]*Element),
	}
}

// add inserts a fresh root holding value and returns its id.
func (f *Forest) add(value string) int {
	id := f.next
	f.next++
	f.elements[id] = &Element{ID: id, Value: value, Parent: id}
	f.order = append(f.order, id)
	return id
}

func (f *Forest) element(id int) (*Element, bool) {
	e, ok := f.elements[id]
	return e, ok
}

// Contains reports whether id is present.
func (f *Forest) Contains(id int) bool {
	_, ok := f.elements[id]
	return ok
}

// Get returns a copy of the element with the given id.
func (f *Forest) Get(id int) (Element, bool) {
	e, ok := f.elements[id]
	if !ok {
		return Element{}, false
	}
	return *e, true
}

// Len returns the number of elements.
func (f *Forest) Len() int {
	return len(f.order)
}

// IDs returns all ids in creation order.
func (f *Forest) IDs() []int {
	ids := make([]int, len(f.order))
	copy(ids, f.order)
	return ids
}

// Elements returns copies of all elements in creation order.
func (f *Forest) Elements() []Element {
	out := make([]Element, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.elements[id])
	}
	return out
}

// root follows parent pointers from id without mutating anything. It
// returns the root and the number of hops taken.
func (f *Forest) root(id int) (int, int) {
	hops := 0
	cur := id
	for {
		e := f.elements[cur]
		if e.Parent == cur {
			return cur, hops
		}
		cur = e.Parent
		hops++
	}
}
