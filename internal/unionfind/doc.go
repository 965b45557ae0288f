// Package unionfind implements the disjoint-set engine behind the
// visualizer: a sparse forest of elements, the find/union operations with
// independently toggleable path compression and union by rank, the global
// rank-to-depth recalculation that follows every compressing find, and the
// projection of the parent relation into a drawable edge list.
//
// The Rank field is overloaded. Before the first compressing find it holds
// the merge heuristic weight; after any compression it is overwritten with
// each element's depth from its root. Callers read it through Engine.Rank
// and never need to know which meaning currently applies.
//
// An Engine is not safe for concurrent use. The shell drives it from a
// single goroutine, interleaving operations with layout ticks.
package unionfind
