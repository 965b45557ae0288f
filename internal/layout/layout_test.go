package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(w, h float64) *Simulator {
	return New(Bounds{Width: w, Height: h}, DefaultParams(), 42)
}

func pos(t *testing.T, s *Simulator, id int) Vec {
	t.Helper()
	v, ok := s.Position(id)
	require.True(t, ok, "node %d not placed", id)
	return v
}

func TestPlace_InsideSpawnMargin(t *testing.T) {
	t.Parallel()
	s := newSim(600, 400)
	for id := 0; id < 200; id++ {
		v := s.Place(id)
		assert.GreaterOrEqual(t, v.X, 50.0)
		assert.LessOrEqual(t, v.X, 550.0)
		assert.GreaterOrEqual(t, v.Y, 50.0)
		assert.LessOrEqual(t, v.Y, 350.0)
	}
	assert.Equal(t, 200, s.Len())
}

func TestPlace_TinyBounds(t *testing.T) {
	t.Parallel()
	s := newSim(40, 20)
	v := s.Place(0)
	assert.InDelta(t, 20, v.X, 1e-9)
	assert.InDelta(t, 10, v.Y, 1e-9)
}

func TestPlace_SameSeedSameSpawn(t *testing.T) {
	t.Parallel()
	a := newSim(800, 600)
	b := newSim(800, 600)
	for id := 0; id < 10; id++ {
		assert.Equal(t, a.Place(id), b.Place(id))
	}
}

func TestTick_RepulsionMovesBothHalfAUnit(t *testing.T) {
	t.Parallel()
	s := newSim(1000, 1000)
	s.SetPosition(0, Vec{X: 100, Y: 100})
	s.SetPosition(1, Vec{X: 110, Y: 100})

	s.Tick(nil)

	assert.InDelta(t, 99.5, pos(t, s, 0).X, 1e-9)
	assert.InDelta(t, 110.5, pos(t, s, 1).X, 1e-9)
	assert.InDelta(t, 100, pos(t, s, 0).Y, 1e-9)
}

func TestTick_CoincidentNodesDoNotRepel(t *testing.T) {
	t.Parallel()
	s := newSim(1000, 1000)
	s.SetPosition(0, Vec{X: 200, Y: 200})
	s.SetPosition(1, Vec{X: 200, Y: 200})

	s.Tick(nil)

	assert.Equal(t, Vec{X: 200, Y: 200}, pos(t, s, 0))
	assert.Equal(t, Vec{X: 200, Y: 200}, pos(t, s, 1))
}

func TestTick_ContainmentClampsToBuffer(t *testing.T) {
	t.Parallel()
	s := newSim(500, 500)
	s.SetPosition(0, Vec{X: 5, Y: 2000})
	s.SetPosition(1, Vec{X: 900, Y: -40})

	s.Tick(nil)

	assert.Equal(t, Vec{X: 30, Y: 470}, pos(t, s, 0))
	assert.Equal(t, Vec{X: 470, Y: 30}, pos(t, s, 1))
}

func TestTick_AttractionMovesOnlyChild(t *testing.T) {
	t.Parallel()
	s := newSim(1000, 1000)
	s.SetPosition(0, Vec{X: 100, Y: 100})
	s.SetPosition(1, Vec{X: 300, Y: 100})

	s.Tick([]Edge{{Child: 1, Parent: 0}})

	assert.Equal(t, Vec{X: 100, Y: 100}, pos(t, s, 0))
	assert.InDelta(t, 299, pos(t, s, 1).X, 1e-9)
}

func TestTick_NoAttractionInsideRestLength(t *testing.T) {
	t.Parallel()
	s := newSim(1000, 1000)
	s.SetPosition(0, Vec{X: 100, Y: 100})
	s.SetPosition(1, Vec{X: 200, Y: 100}) // exactly rest length, outside repulsion radius

	s.Tick([]Edge{{Child: 1, Parent: 0}})

	assert.Equal(t, Vec{X: 200, Y: 100}, pos(t, s, 1))
}

func TestTick_UnknownEdgeEndpointsIgnored(t *testing.T) {
	t.Parallel()
	s := newSim(1000, 1000)
	s.SetPosition(0, Vec{X: 100, Y: 100})
	assert.NotPanics(t, func() {
		s.Tick([]Edge{{Child: 0, Parent: 9}, {Child: 9, Parent: 0}})
	})
}

func TestTick_StaysInBoundsEveryFrame(t *testing.T) {
	t.Parallel()
	const eps = 1e-9
	s := newSim(300, 200)
	var edges []Edge
	for id := 0; id < 30; id++ {
		s.Place(id)
		if id > 0 {
			edges = append(edges, Edge{Child: id, Parent: id / 3})
		}
	}

	for tick := 0; tick < 500; tick++ {
		s.Tick(edges)
		for id := 0; id < 30; id++ {
			v := pos(t, s, id)
			require.True(t, v.X >= -eps && v.X <= 300+eps, "tick %d node %d x=%f", tick, id, v.X)
			require.True(t, v.Y >= -eps && v.Y <= 200+eps, "tick %d node %d y=%f", tick, id, v.Y)
		}
	}
}

func TestTick_ResizeShrinksIntoNewBounds(t *testing.T) {
	t.Parallel()
	s := newSim(1000, 1000)
	s.SetPosition(0, Vec{X: 900, Y: 900})
	s.Resize(Bounds{Width: 400, Height: 300})
	s.Tick(nil)
	assert.Equal(t, Vec{X: 370, Y: 270}, pos(t, s, 0))
	assert.Equal(t, Bounds{Width: 400, Height: 300}, s.Bounds())
}

func TestTick_CrowdedSingletonsSpreadOut(t *testing.T) {
	t.Parallel()
	s := newSim(1200, 900)
	for id := 0; id < 6; id++ {
		s.SetPosition(id, Vec{X: 600 + float64(id), Y: 450 + float64(id%2)})
	}
	before := minSeparation(s)

	for tick := 0; tick < 300; tick++ {
		s.Tick(nil)
	}

	assert.Greater(t, minSeparation(s), before)
}

func TestReset(t *testing.T) {
	t.Parallel()
	s := newSim(100, 100)
	s.Place(3)
	s.Reset()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Position(3)
	assert.False(t, ok)
}

func minSeparation(s *Simulator) float64 {
	best := math.Inf(1)
	for i, a := range s.order {
		for _, b := range s.order[i+1:] {
			pa, pb := s.pos[a], s.pos[b]
			best = math.Min(best, math.Hypot(pa.X-pb.X, pa.Y-pb.Y))
		}
	}
	return best
}
