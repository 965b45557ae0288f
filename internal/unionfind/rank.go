package unionfind

// RecalculateRanks overwrites every element's Rank with its depth, the number
// of parent hops to its root. Roots get 0. The whole forest is visited, not
// just the path a compression touched.
func RecalculateRanks(f *Forest) {
	for id, d := range Depths(f) {
		f.elements[id].Rank = d
	}
}

// Depths returns the depth of every element keyed by id. Depths along a
// shared chain are memoized so each element is resolved once.
func Depths(f *Forest) map[int]int {
	depth := make(map[int]int, len(f.elements))
	var chain []int
	for _, id := range f.order {
		if _, ok := depth[id]; ok {
			continue
		}
		// Walk up until a root or an already-resolved ancestor.
		chain = chain[:0]
		cur := id
		base := 0
		for {
			if d, ok := depth[cur]; ok {
				base = d
				break
			}
			e := f.elements[cur]
			if e.Parent == cur {
				depth[cur] = 0
				base = 0
				break
			}
			chain = append(chain, cur)
			cur = e.Parent
		}
		for i := len(chain) - 1; i >= 0; i-- {
			base++
			depth[chain[i]] = base
		}
	}
	return depth
}
