// SPDX-License-Identifier: MIT

package state

import (
	"fmt"

	"github.com/katalvlaran/schoolbus/transit"
)

// boardingCost is charged for every embark and every disembark.
const boardingCost int64 = 1

// Successors enumerates every state reachable from s in one transition, in a
// fixed order:
//
//  1. Move: one successor per positive-cost transition leaving the current stop.
//  2. Disembark: one successor per onboard passenger whose destination is the
//     current stop.
//  3. Embark: one successor per passenger waiting at the current stop, only
//     while the bus has a free seat.
//
// Embark is never attempted on a full bus, so a returned error means a broken
// invariant rather than a normal outcome.
func (s *State) Successors() ([]*State, error) {
	moves := s.graph.Neighbors(s.bus.Current)
	waiting := s.stops[s.bus.Current-1].Passengers
	out := make([]*State, 0, len(moves)+len(s.bus.Passengers)+len(waiting))

	for _, t := range moves {
		next, err := s.Move(t)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
	}

	for _, p := range s.bus.Passengers {
		if p.Destination != s.bus.Current {
			continue
		}
		next, err := s.Disembark(p)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
	}

	if !s.bus.Full() {
		for _, p := range waiting {
			next, err := s.Embark(p)
			if err != nil {
				return nil, err
			}
			out = append(out, next)
		}
	}

	return out, nil
}

// Move relocates the bus along t. Path cost grows by t.Cost; manifests are
// shared with s unchanged.
//
// Errors: ErrInvariantViolation if t targets an unknown stop or has no positive cost.
func (s *State) Move(t transit.Transition) (*State, error) {
	if !s.graph.Contains(t.To) || t.Cost <= 0 {
		return nil, fmt.Errorf("%w: move P%d→P%d cost=%d", ErrInvariantViolation, s.bus.Current, t.To, t.Cost)
	}
	bus := s.bus
	bus.Current = t.To

	next := s.derive(bus, s.stops, transit.AddCost(s.pathCost, t.Cost), s.delivered)
	next.seal(s.id, false, false, 0)
	return next, nil
}

// Disembark drops p off at the current stop. Only the first onboard passenger
// equal to p leaves, even when duplicates exist. Path cost grows by one.
//
// Errors: ErrInvariantViolation if p is not onboard or the bus is not at p's destination.
func (s *State) Disembark(p Passenger) (*State, error) {
	if p.Destination != s.bus.Current {
		return nil, fmt.Errorf("%w: disembark %s at P%d", ErrInvariantViolation, p, s.bus.Current)
	}
	idx := indexOf(s.bus.Passengers, p)
	if idx < 0 {
		return nil, fmt.Errorf("%w: passenger %s is not onboard", ErrInvariantViolation, p)
	}

	bus := s.bus
	bus.Passengers = withoutIndex(s.bus.Passengers, idx)

	next := s.derive(bus, s.stops, transit.AddCost(s.pathCost, boardingCost), s.delivered+1)
	next.seal(s.id, false, true, p.Destination)
	return next, nil
}

// Embark moves p from the current stop's waiting list onto the bus. Only the
// current stop's manifest and the bus manifest are copied. Path cost grows by one.
//
// Errors: ErrInvariantViolation if the bus is full, p's origin is not the
// current stop, or p is not waiting there.
func (s *State) Embark(p Passenger) (*State, error) {
	if s.bus.Full() {
		return nil, fmt.Errorf("%w: embark %s on a full bus (capacity %d)", ErrInvariantViolation, p, s.bus.Capacity)
	}
	if p.Origin != s.bus.Current {
		return nil, fmt.Errorf("%w: embark %s at P%d", ErrInvariantViolation, p, s.bus.Current)
	}
	cur := s.bus.Current - 1
	idx := indexOf(s.stops[cur].Passengers, p)
	if idx < 0 {
		return nil, fmt.Errorf("%w: passenger %s is not waiting at P%d", ErrInvariantViolation, p, s.bus.Current)
	}

	bus := s.bus
	bus.Passengers = make([]Passenger, len(s.bus.Passengers)+1)
	copy(bus.Passengers, s.bus.Passengers)
	bus.Passengers[len(s.bus.Passengers)] = p

	stops := make([]Stop, len(s.stops))
	copy(stops, s.stops)
	stops[cur].Passengers = withoutIndex(s.stops[cur].Passengers, idx)

	next := s.derive(bus, stops, transit.AddCost(s.pathCost, boardingCost), s.delivered)
	next.seal(s.id, true, false, p.Destination)
	return next, nil
}

func indexOf(ps []Passenger, p Passenger) int {
	for i, q := range ps {
		if q == p {
			return i
		}
	}
	return -1
}
