package unionfind

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeN creates n singletons labelled by their index.
func makeN(t *testing.T, e *Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		id := e.MakeSet(string(rune('A' + i%26)))
		require.Equal(t, i, id)
	}
}

func elem(t *testing.T, e *Engine, id int) Element {
	t.Helper()
	el, ok := e.Forest().Get(id)
	require.True(t, ok, "element %d missing", id)
	return el
}

func TestMakeSet_FreshRoots(t *testing.T) {
	t.Parallel()
	e := New()
	makeN(t, e, 5)

	for _, el := range e.Elements() {
		assert.True(t, el.IsRoot(), "element %d", el.ID)
		assert.Equal(t, 0, el.Rank)
	}
	assert.Empty(t, e.Edges())
	assert.Equal(t, 5, e.Len())
}

func TestMakeSet_IdsNeverReused(t *testing.T) {
	t.Parallel()
	e := New()
	a := e.MakeSet("x")
	b := e.MakeSet("x")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "x", elem(t, e, b).Value)
}

func TestFind_NotFound(t *testing.T) {
	t.Parallel()
	for _, pc := range []bool{false, true} {
		e := New(WithPathCompression(pc))
		_, err := e.Find(99)
		require.ErrorIs(t, err, ErrNotFound)
	}
}

func TestUnion_NotFoundLeavesForestUntouched(t *testing.T) {
	t.Parallel()
	e := New(WithPathCompression(true))
	makeN(t, e, 3)
	_, err := e.Union(2, 1)
	require.NoError(t, err)
	before := e.Elements()

	merged, err := e.Union(0, 42)
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, merged)

	merged, err = e.Union(42, 0)
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, merged)

	assert.Equal(t, before, e.Elements())
}

func TestUnion_NaiveDefault(t *testing.T) {
	t.Parallel()
	e := New()
	a := e.MakeSet("A")
	b := e.MakeSet("B")
	require.Equal(t, 0, a)
	require.Equal(t, 1, b)

	merged, err := e.Union(0, 1)
	require.NoError(t, err)
	assert.True(t, merged)

	assert.Equal(t, 0, elem(t, e, 1).Parent)
	assert.Equal(t, 1, elem(t, e, 0).Rank)
	assert.Equal(t, 0, elem(t, e, 1).Rank)
	assert.Equal(t, []Edge{{Child: 1, Parent: 0}}, e.Edges())
}

func TestUnion_NaiveTakesMaxHeight(t *testing.T) {
	t.Parallel()
	e := New()
	makeN(t, e, 4)
	// 1 <- 2 <- 3 gives root 1 a height of 2.
	_, err := e.Union(2, 3)
	require.NoError(t, err)
	_, err = e.Union(1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, elem(t, e, 1).Rank)

	// Naive union always hangs y's root under x's root, even when x is shorter.
	_, err = e.Union(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, elem(t, e, 1).Parent)
	assert.Equal(t, 3, elem(t, e, 0).Rank)
}

func TestUnion_ByRankTieBreak(t *testing.T) {
	t.Parallel()
	e := New(WithUnionByRank(true))
	makeN(t, e, 2)

	merged, err := e.Union(0, 1)
	require.NoError(t, err)
	require.True(t, merged)
	assert.Equal(t, 0, elem(t, e, 1).Parent)
	assert.Equal(t, 1, elem(t, e, 0).Rank)
}

func TestUnion_ByRankLowerGoesUnderHigher(t *testing.T) {
	t.Parallel()
	e := New(WithUnionByRank(true))
	makeN(t, e, 3)
	_, err := e.Union(1, 2) // rank[1] = 1
	require.NoError(t, err)

	_, err = e.Union(0, 1) // rank[0]=0 < rank[1]=1: 0 goes under 1
	require.NoError(t, err)
	assert.Equal(t, 1, elem(t, e, 0).Parent)
	assert.Equal(t, 1, elem(t, e, 1).Rank)
	assert.True(t, elem(t, e, 1).IsRoot())
}

func TestUnion_AlreadyConnectedIsNoOp(t *testing.T) {
	t.Parallel()
	e := New()
	makeN(t, e, 3)
	_, err := e.Union(0, 1)
	require.NoError(t, err)
	before := e.Elements()

	merged, err := e.Union(1, 0)
	require.NoError(t, err)
	assert.False(t, merged)

	merged, err = e.Union(2, 2)
	require.NoError(t, err)
	assert.False(t, merged)

	assert.Equal(t, before, e.Elements())
}

// buildChain produces 0 <- 1 <- 2 <- 3 using naive unions.
func buildChain(t *testing.T, e *Engine) {
	t.Helper()
	makeN(t, e, 4)
	for _, p := range [][2]int{{2, 3}, {1, 2}, {0, 1}} {
		merged, err := e.Union(p[0], p[1])
		require.NoError(t, err)
		require.True(t, merged)
	}
	for id, want := range []int{0, 0, 1, 2} {
		require.Equal(t, want, elem(t, e, id).Parent)
	}
}

func TestFind_WithoutCompressionIsReadOnly(t *testing.T) {
	t.Parallel()
	e := New()
	buildChain(t, e)
	before := e.Elements()

	root, err := e.Find(3)
	require.NoError(t, err)
	assert.Equal(t, 0, root)
	assert.Equal(t, before, e.Elements())
}

func TestFind_CompressionFlattensChainAndRecalculates(t *testing.T) {
	t.Parallel()
	e := New()
	buildChain(t, e)
	e.SetPathCompression(true)

	var got Compression
	e.hooks.OnCompress = func(c Compression) { got = c }

	root, err := e.Find(3)
	require.NoError(t, err)
	require.Equal(t, 0, root)

	for _, id := range []int{1, 2, 3} {
		assert.Equal(t, 0, elem(t, e, id).Parent, "parent of %d", id)
	}
	wantRanks := []int{0, 1, 1, 1}
	for id, want := range wantRanks {
		r, err := e.Rank(id)
		require.NoError(t, err)
		assert.Equal(t, want, r, "rank of %d", id)
	}

	assert.Equal(t, 0, got.Root)
	assert.Equal(t, []int{3, 2, 1, 0}, got.Path)
	assert.Equal(t, []Reparent{{ID: 3, From: 2, To: 0}, {ID: 2, From: 1, To: 0}}, got.Reparented)
}

func TestFind_CompressionRecalculatesWholeForest(t *testing.T) {
	t.Parallel()
	e := New()
	makeN(t, e, 4)
	_, err := e.Union(0, 1) // naive: rank[0] = 1
	require.NoError(t, err)
	_, err = e.Union(2, 3) // naive: rank[2] = 1
	require.NoError(t, err)
	require.Equal(t, 1, elem(t, e, 2).Rank)

	e.SetPathCompression(true)
	_, err = e.Find(0)
	require.NoError(t, err)

	// 2 was never on the path but its rank is now its depth.
	assert.Equal(t, 0, elem(t, e, 0).Rank)
	assert.Equal(t, 0, elem(t, e, 2).Rank)
	assert.Equal(t, 1, elem(t, e, 3).Rank)
}

func TestUnion_DecisionSeesPostRecalculationRanks(t *testing.T) {
	t.Parallel()
	e := New(WithUnionByRank(true))
	makeN(t, e, 3)
	_, err := e.Union(1, 2) // rank[1] = 1
	require.NoError(t, err)
	require.Equal(t, 1, elem(t, e, 1).Rank)

	// With compression on, the finds inside Union rewrite rank[1] to its
	// depth (0), so the roots tie and 1 goes under 0.
	e.SetPathCompression(true)
	merged, err := e.Union(0, 1)
	require.NoError(t, err)
	require.True(t, merged)

	assert.Equal(t, 0, elem(t, e, 1).Parent)
	assert.Equal(t, 1, elem(t, e, 0).Rank)
}

func TestUnion_ByRankBalancedMergeIsLogarithmic(t *testing.T) {
	t.Parallel()
	const n = 64
	e := New(WithUnionByRank(true))
	makeN(t, e, n)

	for step := 1; step < n; step *= 2 {
		for i := 0; i+step < n; i += 2 * step {
			_, err := e.Union(i, i+step)
			require.NoError(t, err)
		}
	}

	maxDepth := 0
	for _, d := range Depths(e.Forest()) {
		maxDepth = max(maxDepth, d)
	}
	assert.LessOrEqual(t, maxDepth, 6) // log2(64)
	assert.Len(t, e.Components(), 1)
}

func TestConnected(t *testing.T) {
	t.Parallel()
	e := New()
	makeN(t, e, 3)
	_, err := e.Union(0, 2)
	require.NoError(t, err)

	ok, err := e.Connected(2, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Connected(1, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = e.Connected(1, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComponents(t *testing.T) {
	t.Parallel()
	e := New()
	makeN(t, e, 5)
	_, _ = e.Union(0, 3)
	_, _ = e.Union(4, 1)

	assert.Equal(t, map[int][]int{
		0: {0, 3},
		2: {2},
		4: {1, 4},
	}, e.Components())
}

func TestReset(t *testing.T) {
	t.Parallel()
	e := New()
	makeN(t, e, 3)
	e.Reset()
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, 0, e.MakeSet("again"))
}

func TestRankAndDepth_NotFound(t *testing.T) {
	t.Parallel()
	e := New()
	_, err := e.Rank(0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.Depth(0)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestRandomOperations drives every combination of heuristics through a
// random sequence of unions and finds and checks the structural invariants
// after each step.
func TestRandomOperations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
	}{
		{"naive", Options{}},
		{"compression", Options{PathCompression: true}},
		{"rank", Options{UnionByRank: true}},
		{"both", Options{PathCompression: true, UnionByRank: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rng := rand.New(rand.NewPCG(7, 11))
			e := New(WithPathCompression(tt.opts.PathCompression), WithUnionByRank(tt.opts.UnionByRank))
			const n = 40
			makeN(t, e, n)

			for step := 0; step < 200; step++ {
				x, y := rng.IntN(n), rng.IntN(n)
				if rng.IntN(3) == 0 {
					r1, err := e.Find(x)
					require.NoError(t, err)
					r2, err := e.Find(x)
					require.NoError(t, err)
					require.Equal(t, r1, r2, "find must be idempotent")
					if tt.opts.PathCompression {
						assertRanksAreDepths(t, e)
					}
					continue
				}
				_, err := e.Union(x, y)
				require.NoError(t, err)
				ok, err := e.Connected(x, y)
				require.NoError(t, err)
				require.True(t, ok, "union(%d, %d) left them apart", x, y)
			}

			// One edge per non-root, every chain ends at a root.
			roots := 0
			for _, el := range e.Elements() {
				if el.IsRoot() {
					roots++
				}
			}
			assert.Len(t, e.Edges(), n-roots)
			assert.Len(t, e.Components(), roots)
		})
	}
}

func assertRanksAreDepths(t *testing.T, e *Engine) {
	t.Helper()
	depths := Depths(e.Forest())
	for _, el := range e.Elements() {
		require.Equal(t, depths[el.ID], el.Rank, "rank of %d", el.ID)
	}
}
