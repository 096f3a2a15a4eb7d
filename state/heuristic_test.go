// SPDX-License-Identifier: MIT

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/schoolbus/state"
	"github.com/katalvlaran/schoolbus/transit"
)

func fourStopGraph(t *testing.T) *transit.Graph {
	t.Helper()
	g, err := transit.NewFromMatrix([][]int64{
		{transit.NoEdge, 2, 3, 19},
		{2, transit.NoEdge, 1, 9},
		{3, 1, transit.NoEdge, transit.NoEdge},
		{1, 9, transit.NoEdge, transit.NoEdge},
	})
	require.NoError(t, err)
	return g
}

func TestHeuristic_Values(t *testing.T) {
	g := fourStopGraph(t)
	stops := []state.Stop{{ID: 3, Passengers: []state.Passenger{pax(3, 1)}}}
	bus := state.Bus{Origin: 1, Capacity: 2, Passengers: []state.Passenger{pax(1, 4)}}

	want := map[state.Heuristic]int64{
		state.HeuristicNone:       0,
		state.HeuristicMaxDeliver: 11, // P1→P2→P4
		state.HeuristicMaxStation: 3,
		state.HeuristicAll:        11,
	}
	for h, cost := range want {
		s, err := state.New(g, stops, bus, state.WithHeuristic(h))
		require.NoError(t, err)
		assert.Equal(t, h, s.Heuristic())
		assert.Equal(t, cost, s.HeuristicCost(), h.String())
		assert.Equal(t, cost, s.TotalCost(), h.String())
	}
}

func TestHeuristic_Dead(t *testing.T) {
	// P3 can be left but never entered.
	g, err := transit.New(3, []transit.Edge{
		{From: 1, To: 2, Cost: 1},
		{From: 2, To: 1, Cost: 1},
		{From: 3, To: 1, Cost: 1},
	})
	require.NoError(t, err)
	stops := []state.Stop{{ID: 3, Passengers: []state.Passenger{pax(3, 1)}}}

	s, err := state.New(g, stops, state.Bus{Origin: 1, Capacity: 1}, state.WithHeuristic(state.HeuristicMaxStation))
	require.NoError(t, err)
	assert.True(t, s.Dead())
	assert.Equal(t, transit.Infinity, s.TotalCost())

	blind, err := state.New(g, stops, state.Bus{Origin: 1, Capacity: 1})
	require.NoError(t, err)
	assert.False(t, blind.Dead())
}

func TestParseHeuristic(t *testing.T) {
	cases := map[string]state.Heuristic{
		"":                                  state.HeuristicNone,
		"none":                              state.HeuristicNone,
		"bogus":                             state.HeuristicNone,
		"max_distance_to_deliver_passenger": state.HeuristicMaxDeliver,
		"max_distance_passenger":            state.HeuristicMaxDeliver,
		"Deliver":                           state.HeuristicMaxDeliver,
		"max_distance_to_station":           state.HeuristicMaxStation,
		" station ":                         state.HeuristicMaxStation,
		"ALL":                               state.HeuristicAll,
	}
	for in, want := range cases {
		assert.Equal(t, want, state.ParseHeuristic(in), in)
	}
	for _, h := range state.Heuristics {
		assert.Equal(t, h, state.ParseHeuristic(h.String()))
	}
}

// TestHeuristic_AdmissibleAndConsistent compares every heuristic against the
// exact remaining cost of every reachable state, and checks the consistency
// inequality h(s) <= c(s, n) + h(n) on every transition.
func TestHeuristic_AdmissibleAndConsistent(t *testing.T) {
	g := fourStopGraph(t)
	stops := []state.Stop{
		{ID: 3, Passengers: []state.Passenger{pax(3, 4)}},
		{ID: 4, Passengers: []state.Passenger{pax(4, 2)}},
	}

	for _, h := range state.Heuristics {
		t.Run(h.String(), func(t *testing.T) {
			root, err := state.New(g, stops, state.Bus{Origin: 1, Capacity: 1}, state.WithHeuristic(h))
			require.NoError(t, err)

			all := reachable(t, root)
			exact := exactRemaining(t, all)
			for id, s := range all {
				if rem, ok := exact[id]; ok {
					require.LessOrEqual(t, s.HeuristicCost(), rem, "admissible at\n%s", s)
				}
				next, err := s.Successors()
				require.NoError(t, err)
				for _, n := range next {
					step := n.PathCost() - s.PathCost()
					require.LessOrEqual(t, s.HeuristicCost(), step+n.HeuristicCost(), "consistent at\n%s", s)
				}
			}
		})
	}
}

// reachable enumerates every state reachable from root, keyed by world id.
func reachable(t *testing.T, root *state.State) map[uint64]*state.State {
	t.Helper()
	all := map[uint64]*state.State{root.ID(): root}
	queue := []*state.State{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next, err := cur.Successors()
		require.NoError(t, err)
		for _, n := range next {
			if _, ok := all[n.ID()]; !ok {
				all[n.ID()] = n
				queue = append(queue, n)
			}
		}
	}
	return all
}

// exactRemaining returns the cheapest cost from each state to any goal state,
// by relaxing every transition until nothing improves.
func exactRemaining(t *testing.T, all map[uint64]*state.State) map[uint64]int64 {
	t.Helper()
	type arc struct {
		to   uint64
		cost int64
	}
	arcs := make(map[uint64][]arc, len(all))
	rem := make(map[uint64]int64, len(all))
	for id, s := range all {
		next, err := s.Successors()
		require.NoError(t, err)
		for _, n := range next {
			arcs[id] = append(arcs[id], arc{to: n.ID(), cost: n.PathCost() - s.PathCost()})
		}
		if s.IsGoal() {
			rem[id] = 0
		}
	}
	for changed := true; changed; {
		changed = false
		for id, out := range arcs {
			for _, a := range out {
				r, ok := rem[a.to]
				if !ok {
					continue
				}
				if cur, seen := rem[id]; !seen || r+a.cost < cur {
					rem[id] = r + a.cost
					changed = true
				}
			}
		}
	}
	return rem
}
