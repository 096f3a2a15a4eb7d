// SPDX-License-Identifier: MIT

// Package transit provides the read-only directed graph of stops the school bus
// drives on, together with the shortest-path queries the search heuristics need.
//
// Overview:
//
//   - Stops are numbered 1..n; edges carry non-negative int64 costs.
//   - Neighbors(stop) lists positive-cost transitions (the legal bus moves).
//   - ShortestPathCost(a, b) runs Bellman-Ford from a (|V|-1 relaxation rounds,
//     early exit when stable) and reads the result at b.
//   - Single-source rows are memoised in a bounded LRU, so heuristic evaluation
//     over many search states does not recompute the relaxation.
//   - Infinity (math.MaxInt64) is the saturating "unreachable" value; AddCost
//     never overflows past it.
//
// Construction:
//
//	g, err := transit.New(4, []transit.Edge{
//	    {From: 1, To: 2, Cost: 2},
//	    {From: 2, To: 4, Cost: 9},
//	})
//
// or from an adjacency matrix where NoEdge marks missing cells:
//
//	g, err := transit.NewFromMatrix([][]int64{
//	    {transit.NoEdge, 2},
//	    {2, transit.NoEdge},
//	})
//
// Errors (sentinel, all wrapping ErrMalformedTopology):
//
//   - ErrEmptyGraph, ErrStopOutOfRange, ErrNegativeCost, ErrNonSquare.
//
// Construction never clamps indices: a bad edge aborts with a descriptive error.
// Behaviour on negative cycles is undefined; negative costs are rejected up front.
package transit
