// SPDX-License-Identifier: MIT

package transit

// ShortestPathCost returns the minimum accumulated cost from src to dst, or
// Infinity when dst is unreachable or either stop is unknown.
//
// The underlying single-source row is memoised (see WithRowCache), so repeated
// heuristic evaluations from the same stop cost one lookup.
func (g *Graph) ShortestPathCost(src, dst int) int64 {
	if !g.Contains(src) || !g.Contains(dst) {
		return Infinity
	}
	return g.row(src)[dst-1]
}

// ShortestPaths returns the minimum cost from src to every stop; index i holds
// the cost to stop i+1. The returned slice is a copy and may be modified.
// Unknown sources yield nil.
func (g *Graph) ShortestPaths(src int) []int64 {
	if !g.Contains(src) {
		return nil
	}
	row := g.row(src)
	out := make([]int64, len(row))
	copy(out, row)
	return out
}

// row returns the shared, read-only cost row for src.
func (g *Graph) row(src int) []int64 {
	if g.rows == nil {
		return g.bellmanFord(src)
	}
	v, err := g.rows.Get(src)
	if err != nil {
		// The loader never fails; fall back to a direct computation regardless.
		return g.bellmanFord(src)
	}
	return v.([]int64)
}

// bellmanFord relaxes every edge |V|-1 times starting from src.
//
// Implementation:
//   - Stage 1: dist[src] = 0, every other entry = Infinity.
//   - Stage 2: Up to |V|-1 rounds over all edges (zero-cost ones included);
//     stop early when a round improves nothing.
//   - Stage 3: Sums saturate through AddCost, so unreachable stays Infinity.
//
// Complexity: Time O(V·E), Space O(V).
func (g *Graph) bellmanFord(src int) []int64 {
	dist := make([]int64, g.nodeCount)
	for i := range dist {
		dist[i] = Infinity
	}
	dist[src-1] = 0

	var (
		round, u int
		cand     int64
		changed  bool
	)
	for round = 1; round < g.nodeCount; round++ {
		changed = false
		for u = 0; u < g.nodeCount; u++ {
			if dist[u] == Infinity {
				continue
			}
			for _, t := range g.transitions[u] {
				cand = AddCost(dist[u], t.Cost)
				if cand < dist[t.To-1] {
					dist[t.To-1] = cand
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	return dist
}
