// SPDX-License-Identifier: MIT

package transit

import (
	"fmt"
	"strings"

	"github.com/bluele/gcache"
)

// Graph is a fixed-size directed adjacency list over stops 1..n.
//
// A Graph is read-only after construction and safe to share between
// goroutines; the shortest-path row cache is internally synchronised.
type Graph struct {
	nodeCount   int
	transitions [][]Transition // transitions[stop-1] in edge insertion order
	edgeCount   int
	rows        gcache.Cache // source stop → []int64; nil when memoisation is off
}

// New builds a Graph with nodeCount stops from the given edges.
//
// Implementation:
//   - Stage 1: Validate nodeCount > 0 (ErrEmptyGraph).
//   - Stage 2: Validate every edge endpoint is in [1, nodeCount] and every cost is >= 0.
//   - Stage 3: Append each edge to its source's adjacency list in input order.
//
// Zero-cost edges are stored (they take part in shortest-path relaxation)
// but are not reported by Neighbors.
//
// Complexity: Time O(V + E), Space O(V + E).
func New(nodeCount int, edges []Edge, opts ...Option) (*Graph, error) {
	if nodeCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEmptyGraph, nodeCount)
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Graph{
		nodeCount:   nodeCount,
		transitions: make([][]Transition, nodeCount),
	}
	for i, e := range edges {
		if e.From < 1 || e.From > nodeCount || e.To < 1 || e.To > nodeCount {
			return nil, fmt.Errorf("%w: edge #%d %d→%d with %d stops", ErrStopOutOfRange, i, e.From, e.To, nodeCount)
		}
		if e.Cost < 0 {
			return nil, fmt.Errorf("%w: edge #%d %d→%d cost=%d", ErrNegativeCost, i, e.From, e.To, e.Cost)
		}
		g.transitions[e.From-1] = append(g.transitions[e.From-1], Transition{To: e.To, Cost: e.Cost})
		g.edgeCount++
	}

	if cfg.RowCacheSize > 0 {
		g.rows = gcache.New(cfg.RowCacheSize).
			LRU().
			LoaderFunc(func(key interface{}) (interface{}, error) {
				return g.bellmanFord(key.(int)), nil
			}).
			Build()
	}

	return g, nil
}

// NewFromMatrix builds a Graph from an n×n adjacency matrix. rows[i][j] is the
// cost of stop i+1 → stop j+1, or NoEdge when the stops are not adjacent.
// Diagonal cells are ignored.
//
// Returns ErrNonSquare if any row length differs from len(rows), and
// ErrNegativeCost for negative cells other than NoEdge.
func NewFromMatrix(rows [][]int64, opts ...Option) (*Graph, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrEmptyGraph)
	}

	edges := make([]Edge, 0, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonSquare, i+1, len(row), n)
		}
		for j, c := range row {
			if i == j || c == NoEdge {
				continue
			}
			edges = append(edges, Edge{From: i + 1, To: j + 1, Cost: c})
		}
	}

	return New(n, edges, opts...)
}

// NodeCount returns the number of stops.
func (g *Graph) NodeCount() int { return g.nodeCount }

// EdgeCount returns the number of stored edges, zero-cost ones included.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Contains reports whether stop is a valid id for this graph.
func (g *Graph) Contains(stop int) bool { return stop >= 1 && stop <= g.nodeCount }

// Neighbors returns the positive-cost transitions leaving stop, in edge
// insertion order. Unknown stops have no neighbors.
func (g *Graph) Neighbors(stop int) []Transition {
	if !g.Contains(stop) {
		return nil
	}
	src := g.transitions[stop-1]
	out := make([]Transition, 0, len(src))
	for _, t := range src {
		if t.Cost != 0 {
			out = append(out, t)
		}
	}
	return out
}

// Cost returns the cost of the first edge a → b, and false if there is none.
func (g *Graph) Cost(a, b int) (int64, bool) {
	if !g.Contains(a) || !g.Contains(b) {
		return 0, false
	}
	for _, t := range g.transitions[a-1] {
		if t.To == b {
			return t.Cost, true
		}
	}
	return 0, false
}

// Edges returns every stored edge ordered by source stop, then insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edgeCount)
	for i, ts := range g.transitions {
		for _, t := range ts {
			out = append(out, Edge{From: i + 1, To: t.To, Cost: t.Cost})
		}
	}
	return out
}

// String renders the adjacency list one stop per line:
//
//	P1: P2(2) P3(3)
func (g *Graph) String() string {
	var sb strings.Builder
	for i, ts := range g.transitions {
		fmt.Fprintf(&sb, "P%d:", i+1)
		for _, t := range ts {
			fmt.Fprintf(&sb, " P%d(%d)", t.To, t.Cost)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
