// Package layout runs the force-directed pass that keeps the forest
// readable on screen. Each Tick is a direct position overwrite: pairwise
// repulsion, then boundary containment, then attraction of every child
// toward its parent. There is no velocity; convergence comes only from the
// small coefficients.
package layout

import (
	"math"
	"math/rand/v2"
	"time"
)

// Vec is a 2-D point in canvas units.
type Vec struct {
	X float64
	Y float64
}

// Bounds is the canvas size in canvas units. The origin is the top-left corner.
type Bounds struct {
	Width  float64
	Height float64
}

// Edge pulls Child toward Parent.
type Edge struct {
	Child  int
	Parent int
}

// Params holds the force coefficients.
type Params struct {
	RepulsionRadius    float64 // pairs closer than this push apart
	RepulsionStrength  float64
	EdgeBuffer         float64 // containment margin from every wall
	RestLength         float64 // children farther than this are pulled in
	AttractionStrength float64
	SpawnMargin        float64 // keep new nodes this far from the walls
}

// DefaultParams returns the coefficients the visualizer was tuned with.
func DefaultParams() Params {
	return Params{
		RepulsionRadius:    100,
		RepulsionStrength:  0.5,
		EdgeBuffer:         30,
		RestLength:         100,
		AttractionStrength: 0.01,
		SpawnMargin:        50,
	}
}

// Simulator owns node positions keyed by element id.
type Simulator struct {
	bounds Bounds
	params Params
	rng    *rand.Rand
	pos    map[int]*Vec
	order  []int
}

// New creates a simulator. A zero seed picks one from the clock, so spawn
// points differ across runs.
func New(bounds Bounds, params Params, seed uint64) *Simulator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Simulator{
		bounds: bounds,
		params: params,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		pos:    make(map[int]*Vec),
	}
}

// Bounds returns the current canvas size.
func (s *Simulator) Bounds() Bounds {
	return s.bounds
}

// Resize changes the canvas size. Nodes outside the new bounds are pulled
// back on the next tick.
func (s *Simulator) Resize(b Bounds) {
	s.bounds = b
}

// Len returns the number of placed nodes.
func (s *Simulator) Len() int {
	return len(s.order)
}

// Reset forgets every node.
func (s *Simulator) Reset() {
	s.pos = make(map[int]*Vec)
	s.order = nil
}

// Place spawns id at a pseudo-random point inside the bounds and returns it.
// Placing an id twice re-rolls its position.
func (s *Simulator) Place(id int) Vec {
	v := Vec{
		X: s.spawn(s.bounds.Width),
		Y: s.spawn(s.bounds.Height),
	}
	s.SetPosition(id, v)
	return v
}

func (s *Simulator) spawn(extent float64) float64 {
	margin := math.Min(s.params.SpawnMargin, extent/2)
	return s.rng.Float64()*(extent-2*margin) + margin
}

// SetPosition overwrites the position of id, adding it if needed.
func (s *Simulator) SetPosition(id int, v Vec) {
	if p, ok := s.pos[id]; ok {
		*p = v
		return
	}
	s.pos[id] = &Vec{X: v.X, Y: v.Y}
	s.order = append(s.order, id)
}

// Position returns the position of id.
func (s *Simulator) Position(id int) (Vec, bool) {
	p, ok := s.pos[id]
	if !ok {
		return Vec{}, false
	}
	return *p, true
}

// Tick runs one frame: repulsion, containment, attraction, in that order.
func (s *Simulator) Tick(edges []Edge) {
	s.repel()
	s.contain()
	s.attract(edges)
}

// repel pushes every node away from each neighbour inside the repulsion
// radius. Pairs are visited as ordered (i, j) with only i moving, and
// positions are updated in place, so later pairs see earlier moves. The
// step is force*d with force = strength/dist, which is not renormalised.
func (s *Simulator) repel() {
	p := s.params
	for i, a := range s.order {
		na := s.pos[a]
		for j, b := range s.order {
			if i == j {
				continue
			}
			nb := s.pos[b]
			dx := na.X - nb.X
			dy := na.Y - nb.Y
			dist := math.Hypot(dx, dy)
			if dist > 0 && dist < p.RepulsionRadius {
				force := p.RepulsionStrength / dist
				na.X += force * dx
				na.Y += force * dy
			}
		}
	}
}

// contain clamps every coordinate back inside the edge buffer.
func (s *Simulator) contain() {
	for _, id := range s.order {
		n := s.pos[id]
		n.X = clampAxis(n.X, s.bounds.Width, s.params.EdgeBuffer)
		n.Y = clampAxis(n.Y, s.bounds.Height, s.params.EdgeBuffer)
	}
}

func clampAxis(v, extent, buffer float64) float64 {
	if extent < 2*buffer {
		// The buffers overlap; the only consistent spot is the midline.
		return extent / 2
	}
	switch {
	case v < buffer:
		return buffer
	case v > extent-buffer:
		return extent - buffer
	}
	return v
}

// attract pulls each child toward its parent once it is farther than the
// rest length. The parent never moves.
func (s *Simulator) attract(edges []Edge) {
	p := s.params
	for _, e := range edges {
		child, ok := s.pos[e.Child]
		if !ok {
			continue
		}
		parent, ok := s.pos[e.Parent]
		if !ok {
			continue
		}
		dx := parent.X - child.X
		dy := parent.Y - child.Y
		dist := math.Hypot(dx, dy)
		if dist > p.RestLength {
			force := p.AttractionStrength * (dist - p.RestLength)
			child.X += force * dx / dist
			child.Y += force * dy / dist
		}
	}
}
