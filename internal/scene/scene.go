// Package scene joins the disjoint-set engine with the presentation state
// the shell draws: node positions from the layout simulator and the
// transient highlight status used while a compression is animated. The
// engine never sees positions or statuses; the two sides meet only by id.
package scene

import (
	"fmt"

	"github.com/papapumpkin/unionviz/internal/config"
	"github.com/papapumpkin/unionviz/internal/layout"
	"github.com/papapumpkin/unionviz/internal/telemetry"
	"github.com/papapumpkin/unionviz/internal/unionfind"
)

// Status is a rendering hint with no algorithmic meaning.
type Status int

// Node statuses.
const (
	StatusNormal Status = iota
	StatusActive
)

// String returns the lower-case status name.
func (s Status) String() string {
	if s == StatusActive {
		return "active"
	}
	return "normal"
}

// Config sizes and tunes a Scene.
type Config struct {
	Bounds          layout.Bounds
	Params          layout.Params
	Seed            uint64
	PathCompression bool
	UnionByRank     bool
	Stagger         bool
	StepTicks       int
	HighlightTicks  int
}

// DefaultConfig matches the defaults in internal/config.
func DefaultConfig() Config {
	return Config{
		Bounds:         layout.Bounds{Width: 900, Height: 600},
		Params:         layout.DefaultParams(),
		Stagger:        true,
		StepTicks:      60,
		HighlightTicks: 30,
	}
}

// FromConfig converts the loaded runtime configuration.
func FromConfig(c config.Config) Config {
	return Config{
		Bounds:          layout.Bounds{Width: c.Canvas.Width, Height: c.Canvas.Height},
		Params:          layout.DefaultParams(),
		Seed:            c.Seed,
		PathCompression: c.PathCompression,
		UnionByRank:     c.UnionByRank,
		Stagger:         c.Animation.Stagger,
		StepTicks:       c.Animation.StepTicks,
		HighlightTicks:  c.Animation.HighlightTicks,
	}
}

// Node is one drawable element. Parent is the engine's current parent;
// the edge list in a Snapshot may still show an older parent while a
// compression is being animated.
type Node struct {
	ID       int
	Value    string
	Rank     int
	Parent   int
	Position layout.Vec
	Status   Status
}

// Snapshot is everything the shell needs to draw one frame.
type Snapshot struct {
	Nodes     []Node
	Edges     []unionfind.Edge
	Options   unionfind.Options
	Bounds    layout.Bounds
	Animating bool
	Paused    bool
	Version   uint64
}

// Option configures a Scene.
type Option func(*Scene)

// WithEmitter records every operation to the given telemetry stream.
func WithEmitter(em *telemetry.Emitter) Option {
	return func(s *Scene) { s.emitter = em }
}

// Scene is the single owner of forest and presentation state. It is driven
// from one goroutine: operations and ticks never interleave.
type Scene struct {
	cfg     Config
	engine  *unionfind.Engine
	sim     *layout.Simulator
	anim    *animation
	edges   []unionfind.Edge
	emitter *telemetry.Emitter
	version uint64
	paused  bool
}

// New creates an empty scene.
func New(cfg Config, opts ...Option) *Scene {
	s := &Scene{
		cfg:  cfg,
		sim:  layout.New(cfg.Bounds, cfg.Params, cfg.Seed),
		anim: newAnimation(cfg.StepTicks, cfg.HighlightTicks),
	}
	for _, o := range opts {
		o(s)
	}
	s.engine = unionfind.New(
		unionfind.WithPathCompression(cfg.PathCompression),
		unionfind.WithUnionByRank(cfg.UnionByRank),
		unionfind.WithHooks(unionfind.Hooks{
			OnCompress: s.onCompress,
			OnMerge:    s.onMerge,
		}),
	)
	return s
}

// Engine exposes the underlying engine for read-only queries.
func (s *Scene) Engine() *unionfind.Engine {
	return s.engine
}

// Version increases whenever the forest or the drawn structure changes.
// The shell can compare it between frames to decide whether to redraw
// anything beyond node positions.
func (s *Scene) Version() uint64 {
	return s.version
}

// Options returns the engine's heuristic flags.
func (s *Scene) Options() unionfind.Options {
	return s.engine.Options()
}

// MakeSet adds a singleton and spawns it at a random point.
func (s *Scene) MakeSet(value string) int {
	id := s.engine.MakeSet(value)
	pos := s.sim.Place(id)
	s.version++
	s.record(telemetry.KindMakeSet, map[string]any{"id": id, "value": value, "x": pos.X, "y": pos.Y})
	return id
}

// Find returns the root of id, compressing when the engine is set to.
func (s *Scene) Find(id int) (int, error) {
	root, err := s.engine.Find(id)
	if err != nil {
		s.record(telemetry.KindError, map[string]any{"op": "find", "error": err.Error()})
		return 0, err
	}
	s.record(telemetry.KindFind, map[string]any{"id": id, "root": root})
	s.refresh()
	return root, nil
}

// Union merges the sets of x and y. It reports false when they were
// already joined.
func (s *Scene) Union(x, y int) (bool, error) {
	merged, err := s.engine.Union(x, y)
	if err != nil {
		s.record(telemetry.KindError, map[string]any{"op": "union", "error": err.Error()})
		return false, err
	}
	if !merged {
		s.record(telemetry.KindUnion, map[string]any{"x": x, "y": y, "merged": false})
	}
	s.refresh()
	return merged, nil
}

// SetPathCompression toggles compression for subsequent finds.
func (s *Scene) SetPathCompression(on bool) {
	s.engine.SetPathCompression(on)
	s.recordOptions()
}

// SetUnionByRank toggles the merge strategy for subsequent unions.
func (s *Scene) SetUnionByRank(on bool) {
	s.engine.SetUnionByRank(on)
	s.recordOptions()
}

// SetPaused freezes or resumes the layout and the animation clock.
func (s *Scene) SetPaused(p bool) {
	s.paused = p
}

// Paused reports whether ticks are currently ignored.
func (s *Scene) Paused() bool {
	return s.paused
}

// Reset discards the whole forest and all presentation state.
func (s *Scene) Reset() {
	s.engine.Reset()
	s.sim.Reset()
	s.anim.flush()
	s.edges = nil
	s.version++
	s.record(telemetry.KindReset, nil)
}

// Resize changes the canvas the layout keeps nodes inside.
func (s *Scene) Resize(b layout.Bounds) {
	s.sim.Resize(b)
}

// Pin moves a node to a host-chosen point, as when it is dragged.
func (s *Scene) Pin(id int, v layout.Vec) error {
	if _, ok := s.sim.Position(id); !ok {
		return fmt.Errorf("%w: %d", unionfind.ErrNotFound, id)
	}
	s.sim.SetPosition(id, v)
	return nil
}

// FlushAnimation skips to the end of any running compression animation.
func (s *Scene) FlushAnimation() {
	if s.anim.running() {
		s.anim.flush()
		s.version++
	}
}

// Tick runs one animation frame: the compression animation clock first,
// then one layout pass over the drawn edges.
func (s *Scene) Tick() {
	if s.paused {
		return
	}
	if s.anim.advance() {
		s.version++
	}
	s.sim.Tick(toLayoutEdges(s.displayEdges()))
}

// Snapshot returns the current drawable state.
func (s *Scene) Snapshot() Snapshot {
	elems := s.engine.Elements()
	nodes := make([]Node, 0, len(elems))
	for _, el := range elems {
		pos, _ := s.sim.Position(el.ID)
		st := StatusNormal
		if s.anim.active(el.ID) {
			st = StatusActive
		}
		nodes = append(nodes, Node{
			ID:       el.ID,
			Value:    el.Value,
			Rank:     el.Rank,
			Parent:   el.Parent,
			Position: pos,
			Status:   st,
		})
	}
	return Snapshot{
		Nodes:     nodes,
		Edges:     s.displayEdges(),
		Options:   s.engine.Options(),
		Bounds:    s.sim.Bounds(),
		Animating: s.anim.running(),
		Paused:    s.paused,
		Version:   s.version,
	}
}

// refresh re-derives the cached edges after an operation that may have
// changed the parent relation.
func (s *Scene) refresh() {
	s.edges = s.engine.Edges()
	s.version++
}

// displayEdges is the derived edge list with pending animation steps still
// pointing at their old parents.
func (s *Scene) displayEdges() []unionfind.Edge {
	if s.edges == nil {
		s.edges = s.engine.Edges()
	}
	if !s.anim.running() {
		return s.edges
	}
	out := make([]unionfind.Edge, len(s.edges))
	for i, e := range s.edges {
		if from, ok := s.anim.displayParent(e.Child); ok {
			e.Parent = from
		}
		out[i] = e
	}
	return out
}

func (s *Scene) onCompress(c unionfind.Compression) {
	s.anim.enqueue(c, s.cfg.Stagger)
	moved := make([]map[string]int, 0, len(c.Reparented))
	for _, r := range c.Reparented {
		moved = append(moved, map[string]int{"id": r.ID, "from": r.From, "to": r.To})
	}
	s.record(telemetry.KindCompress, map[string]any{"root": c.Root, "path": c.Path, "reparented": moved})
}

func (s *Scene) onMerge(m unionfind.Merge) {
	s.record(telemetry.KindUnion, map[string]any{
		"child":       m.Child,
		"parent":      m.Parent,
		"parent_rank": m.ParentRank,
		"merged":      true,
	})
}

func (s *Scene) recordOptions() {
	o := s.engine.Options()
	s.version++
	s.record(telemetry.KindOptions, map[string]bool{
		"path_compression": o.PathCompression,
		"union_by_rank":    o.UnionByRank,
	})
}

func (s *Scene) record(kind string, data any) {
	// Telemetry is best effort; a full disk must not break the session.
	_ = s.emitter.Record(kind, data)
}

func toLayoutEdges(edges []unionfind.Edge) []layout.Edge {
	out := make([]layout.Edge, len(edges))
	for i, e := range edges {
		out[i] = layout.Edge{Child: e.Child, Parent: e.Parent}
	}
	return out
}
