// SPDX-License-Identifier: MIT

package transit

// Reachable returns, for every stop, whether the bus can drive there from src
// using positive-cost transitions only (the moves Neighbors reports).
// Index i refers to stop i+1; src itself is always reachable.
// Unknown sources yield nil.
//
// Complexity: Time O(V + E), Space O(V).
func (g *Graph) Reachable(src int) []bool {
	if !g.Contains(src) {
		return nil
	}

	seen := make([]bool, g.nodeCount)
	queue := make([]int, 0, g.nodeCount)
	seen[src-1] = true
	queue = append(queue, src)

	var cur int
	for len(queue) > 0 {
		cur = queue[0]
		queue = queue[1:]
		for _, t := range g.transitions[cur-1] {
			if t.Cost == 0 || seen[t.To-1] {
				continue
			}
			seen[t.To-1] = true
			queue = append(queue, t.To)
		}
	}

	return seen
}

// StronglyConnected reports whether every stop in stops is reachable from hub
// and can reach hub back. Unknown stops are never connected.
func (g *Graph) StronglyConnected(hub int, stops []int) bool {
	forward := g.Reachable(hub)
	if forward == nil {
		return false
	}
	for _, s := range stops {
		if !g.Contains(s) || !forward[s-1] {
			return false
		}
		back := g.Reachable(s)
		if !back[hub-1] {
			return false
		}
	}
	return true
}
