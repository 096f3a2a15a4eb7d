// SPDX-License-Identifier: MIT

package state

import "github.com/katalvlaran/schoolbus/transit"

// estimate returns the remaining-cost lower bound selected by the options.
//
// Both estimates are the largest shortest-path cost from the bus to a place
// the bus must still visit, so they never exceed the true remaining cost and
// drop by at most the move cost along any edge. Transit rows come from the
// graph's row cache, so repeated positions cost one Bellman-Ford run.
// An unreachable obligation yields transit.Infinity.
//
// Complexity: O(V + |onboard|) per call after the row is cached.
func (s *State) estimate() int64 {
	switch s.opts.Heuristic {
	case HeuristicMaxDeliver:
		return s.maxToDeliver()
	case HeuristicMaxStation:
		return s.maxToStation()
	case HeuristicAll:
		return max(s.maxToDeliver(), s.maxToStation())
	default:
		return 0
	}
}

// maxToDeliver is the largest cost from the bus to an onboard passenger's destination.
func (s *State) maxToDeliver() int64 {
	var best int64
	for _, p := range s.bus.Passengers {
		if d := s.graph.ShortestPathCost(s.bus.Current, p.Destination); d > best {
			best = d
		}
	}
	return best
}

// maxToStation is the largest cost from the bus to a stop with waiting passengers.
func (s *State) maxToStation() int64 {
	var best int64
	for _, st := range s.stops {
		if len(st.Passengers) == 0 {
			continue
		}
		if d := s.graph.ShortestPathCost(s.bus.Current, st.ID); d > best {
			best = d
		}
	}
	return best
}

// Dead reports whether s can never reach a goal: the estimate is infinite.
func (s *State) Dead() bool { return s.hCost >= transit.Infinity }
