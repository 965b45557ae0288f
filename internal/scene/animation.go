package scene

import "github.com/papapumpkin/unionviz/internal/unionfind"

// animStep is one node's turn in a compression animation. At tick At the
// node lights up and, if Reparent is set, its drawn edge jumps from From to
// To. It stays lit for the highlight duration.
type animStep struct {
	ID       int
	From     int
	To       int
	Reparent bool
	At       int
}

// animation replays already-committed compressions one node at a time. It
// never touches the engine; it only decides which parent to draw and which
// nodes to highlight at the current clock.
type animation struct {
	steps     []animStep
	clock     int
	stepTicks int
	highlight int
}

func newAnimation(stepTicks, highlight int) *animation {
	return &animation{stepTicks: stepTicks, highlight: highlight}
}

// enqueue appends the steps for c after whatever is still pending. With
// stagger off every step starts at once.
func (a *animation) enqueue(c unionfind.Compression, stagger bool) {
	moved := make(map[int]unionfind.Reparent, len(c.Reparented))
	for _, r := range c.Reparented {
		moved[r.ID] = r
	}

	start := a.clock
	if n := len(a.steps); n > 0 && stagger {
		start = max(start, a.steps[n-1].At+a.stepTicks)
	}
	for i, id := range c.Path {
		at := start
		if stagger {
			at += i * a.stepTicks
		}
		st := animStep{ID: id, At: at}
		if r, ok := moved[id]; ok {
			st.Reparent = true
			st.From = r.From
			st.To = r.To
		}
		a.steps = append(a.steps, st)
	}
}

// running reports whether any step has not finished its highlight.
func (a *animation) running() bool {
	return len(a.steps) > 0 && a.clock < a.end()
}

func (a *animation) end() int {
	end := 0
	for _, st := range a.steps {
		end = max(end, st.At+max(a.highlight, 1))
	}
	return end
}

// advance moves the clock one tick and drops the step list once every step
// has played. It reports whether anything visible changed.
func (a *animation) advance() bool {
	if len(a.steps) == 0 {
		return false
	}
	a.clock++
	changed := false
	for _, st := range a.steps {
		if st.At == a.clock || st.At+a.highlight == a.clock {
			changed = true
		}
	}
	if a.clock >= a.end() {
		a.steps = nil
		a.clock = 0
		return true
	}
	return changed
}

// flush finishes everything immediately.
func (a *animation) flush() {
	a.steps = nil
	a.clock = 0
}

// displayParent returns the parent to draw for id while its first pending
// reparent step has not fired yet.
func (a *animation) displayParent(id int) (int, bool) {
	for _, st := range a.steps {
		if st.ID == id && st.Reparent && st.At > a.clock {
			return st.From, true
		}
	}
	return 0, false
}

// active reports whether id is inside its highlight window.
func (a *animation) active(id int) bool {
	for _, st := range a.steps {
		if st.ID == id && st.At <= a.clock && a.clock < st.At+a.highlight {
			return true
		}
	}
	return false
}
