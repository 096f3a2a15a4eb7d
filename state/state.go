// SPDX-License-Identifier: MIT

package state

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/schoolbus/ledger"
	"github.com/katalvlaran/schoolbus/transit"
)

// State is one node of the search space: where the bus is, who is onboard,
// who is still waiting where, and what it cost to get here.
//
// A State never changes after construction. Transitions build a new State
// that shares every untouched passenger manifest with its parent; only the
// manifest a transition edits is copied. The graph and options are shared.
type State struct {
	graph *transit.Graph
	opts  Options

	bus       Bus
	stops     []Stop // stops[i] is stop i+1
	pathCost  int64
	delivered int

	id     uint64
	record ledger.Record
	hCost  int64
}

// New builds the initial state of a search.
//
// Implementation:
//   - Stage 1: Validate the graph, the bus (origin, current stop, capacity, onboard
//     passengers) and every listed stop against [1, g.NodeCount()].
//   - Stage 2: Normalise stops into a dense slice indexed by stop id; stops not listed
//     start empty. A stop listed twice is rejected.
//   - Stage 3: Compute the identity hash (parent id 0), the expansion record and the
//     heuristic estimate.
//
// A zero bus.Current means "at the origin". Waiting passengers must have their
// origin equal to the stop they wait at.
//
// Errors: ErrInvalidProblem (wrapped with the offending detail).
func New(g *transit.Graph, stops []Stop, bus Bus, opts ...Option) (*State, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: graph is nil", ErrInvalidProblem)
	}
	cfg := Options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !g.Contains(bus.Origin) {
		return nil, fmt.Errorf("%w: bus origin P%d outside [1, %d]", ErrInvalidProblem, bus.Origin, g.NodeCount())
	}
	if bus.Current == 0 {
		bus.Current = bus.Origin
	}
	if !g.Contains(bus.Current) {
		return nil, fmt.Errorf("%w: bus position P%d outside [1, %d]", ErrInvalidProblem, bus.Current, g.NodeCount())
	}
	if bus.Capacity < 0 {
		return nil, fmt.Errorf("%w: negative bus capacity %d", ErrInvalidProblem, bus.Capacity)
	}
	if len(bus.Passengers) > bus.Capacity {
		return nil, fmt.Errorf("%w: %d passengers onboard exceed capacity %d", ErrInvalidProblem, len(bus.Passengers), bus.Capacity)
	}
	for _, p := range bus.Passengers {
		if !g.Contains(p.Destination) {
			return nil, fmt.Errorf("%w: onboard passenger %s has unknown destination", ErrInvalidProblem, p)
		}
	}
	bus.Passengers = clonePassengers(bus.Passengers)

	dense := make([]Stop, g.NodeCount())
	for i := range dense {
		dense[i].ID = i + 1
	}
	listed := make([]bool, g.NodeCount())
	for _, st := range stops {
		if !g.Contains(st.ID) {
			return nil, fmt.Errorf("%w: stop P%d outside [1, %d]", ErrInvalidProblem, st.ID, g.NodeCount())
		}
		if listed[st.ID-1] {
			return nil, fmt.Errorf("%w: stop P%d listed twice", ErrInvalidProblem, st.ID)
		}
		listed[st.ID-1] = true
		for _, p := range st.Passengers {
			if p.Origin != st.ID {
				return nil, fmt.Errorf("%w: passenger %s waits at P%d", ErrInvalidProblem, p, st.ID)
			}
			if !g.Contains(p.Destination) {
				return nil, fmt.Errorf("%w: passenger %s has unknown destination", ErrInvalidProblem, p)
			}
		}
		dense[st.ID-1].Passengers = clonePassengers(st.Passengers)
	}

	s := &State{
		graph: g,
		opts:  cfg,
		bus:   bus,
		stops: dense,
	}
	s.seal(0, false, false, 0)

	return s, nil
}

// derive returns a child sharing graph and options with s. The caller fills in
// the changed fields and then calls seal.
func (s *State) derive(bus Bus, stops []Stop, pathCost int64, delivered int) *State {
	return &State{
		graph:     s.graph,
		opts:      s.opts,
		bus:       bus,
		stops:     stops,
		pathCost:  pathCost,
		delivered: delivered,
	}
}

// seal computes identity, record and heuristic once the configuration is final.
func (s *State) seal(parentID uint64, embarking, disembarking bool, destination int) {
	s.id = s.hash(parentID)
	s.record = ledger.Record{
		ID:           s.id,
		ParentID:     parentID,
		Stop:         s.bus.Current,
		Embarking:    embarking,
		Disembarking: disembarking,
		Destination:  destination,
	}
	s.hCost = s.estimate()
}

// IsGoal reports whether nobody is waiting, nobody is onboard and the bus is
// back at its origin.
func (s *State) IsGoal() bool {
	for _, st := range s.stops {
		if len(st.Passengers) != 0 {
			return false
		}
	}
	return s.bus.Current == s.bus.Origin && len(s.bus.Passengers) == 0
}

// ID returns the identity hash.
func (s *State) ID() uint64 { return s.id }

// ParentID returns the identity of the state this one was generated from.
func (s *State) ParentID() uint64 { return s.record.ParentID }

// Record returns the compact expansion record kept by the closed list.
func (s *State) Record() ledger.Record { return s.record }

// PathCost returns the accumulated cost from the initial state.
func (s *State) PathCost() int64 { return s.pathCost }

// HeuristicCost returns the memoised remaining-cost estimate.
// It is transit.Infinity when some required stop is unreachable.
func (s *State) HeuristicCost() int64 { return s.hCost }

// TotalCost returns PathCost + HeuristicCost, saturated at transit.Infinity.
func (s *State) TotalCost() int64 { return transit.AddCost(s.pathCost, s.hCost) }

// Heuristic returns the selector shared by the search.
func (s *State) Heuristic() Heuristic { return s.opts.Heuristic }

// HashMode returns the identity mode shared by the search.
func (s *State) HashMode() HashMode { return s.opts.HashMode }

// Graph returns the shared transit graph.
func (s *State) Graph() *transit.Graph { return s.graph }

// Current returns the stop the bus is at.
func (s *State) Current() int { return s.bus.Current }

// Bus returns a copy of the bus, manifest included.
func (s *State) Bus() Bus {
	b := s.bus
	b.Passengers = clonePassengers(s.bus.Passengers)
	return b
}

// Stops returns a deep copy of every stop (one entry per graph node).
func (s *State) Stops() []Stop {
	out := make([]Stop, len(s.stops))
	for i, st := range s.stops {
		out[i] = Stop{ID: st.ID, Passengers: clonePassengers(st.Passengers)}
	}
	return out
}

// Waiting returns the number of passengers still waiting at any stop.
func (s *State) Waiting() int {
	n := 0
	for _, st := range s.stops {
		n += len(st.Passengers)
	}
	return n
}

// Onboard returns the number of passengers on the bus.
func (s *State) Onboard() int { return len(s.bus.Passengers) }

// Delivered returns the number of passengers dropped off since the initial state.
func (s *State) Delivered() int { return s.delivered }

// String renders a short multi-line debug view of the state.
func (s *State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "B: P%d %d passengers.\n", s.bus.Current, len(s.bus.Passengers))
	fmt.Fprintf(&sb, "Remaining: %d\n", s.Waiting())
	fmt.Fprintf(&sb, "Cost: %d\n", s.pathCost)
	fmt.Fprintf(&sb, "ID: %d parent: %d\n", s.id, s.record.ParentID)
	return sb.String()
}

func clonePassengers(ps []Passenger) []Passenger {
	if len(ps) == 0 {
		return nil
	}
	out := make([]Passenger, len(ps))
	copy(out, ps)
	return out
}

// withoutIndex returns a fresh slice holding ps minus element i.
func withoutIndex(ps []Passenger, i int) []Passenger {
	if len(ps) == 1 {
		return nil
	}
	out := make([]Passenger, 0, len(ps)-1)
	out = append(out, ps[:i]...)
	return append(out, ps[i+1:]...)
}
