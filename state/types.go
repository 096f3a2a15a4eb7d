// SPDX-License-Identifier: MIT
// Package state defines the problem data model (passengers, stops, schools,
// bus), the heuristic selector and the sentinel errors of the search state.
//
// Errors:
//
//	ErrInvalidProblem     - initial stops/bus reference unknown stops or break capacity.
//	ErrInvariantViolation - a transition precondition does not hold (full bus,
//	                        wrong origin, passenger not onboard).
package state

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for state construction and transitions.
var (
	// ErrInvalidProblem indicates an initial configuration that cannot be searched.
	ErrInvalidProblem = errors.New("state: invalid problem")

	// ErrInvariantViolation indicates a transition attempted against its precondition.
	ErrInvariantViolation = errors.New("state: invariant violation")
)

// Passenger is a student travelling from Origin to Destination (stop ids).
// Passengers are values: they move between stop and bus manifests, but their
// fields never change.
type Passenger struct {
	Origin      int
	Destination int
}

// String renders the passenger as "P<origin>→P<destination>".
func (p Passenger) String() string {
	return fmt.Sprintf("P%d→P%d", p.Origin, p.Destination)
}

// Stop is a graph node together with the passengers waiting at it.
type Stop struct {
	ID         int
	Passengers []Passenger
}

// School is located at a stop; passengers heading to it have Destination == Stop.
type School struct {
	ID   int
	Stop int
}

// Bus is the single vehicle: where it started, where it is, how many seats it
// has and who is onboard (boarding order).
type Bus struct {
	Origin     int
	Current    int
	Capacity   int
	Passengers []Passenger
}

// Full reports whether no seat is left.
func (b Bus) Full() bool { return len(b.Passengers) >= b.Capacity }

// Heuristic selects the remaining-cost estimate used to order the frontier.
type Heuristic int

const (
	// HeuristicNone estimates zero: plain uniform-cost search.
	HeuristicNone Heuristic = iota

	// HeuristicMaxDeliver is the largest shortest-path cost from the bus to an
	// onboard passenger's destination.
	HeuristicMaxDeliver

	// HeuristicMaxStation is the largest shortest-path cost from the bus to a
	// stop that still has waiting passengers.
	HeuristicMaxStation

	// HeuristicAll is the maximum of HeuristicMaxDeliver and HeuristicMaxStation.
	HeuristicAll
)

// Heuristics lists every selector in declaration order.
var Heuristics = []Heuristic{HeuristicNone, HeuristicMaxDeliver, HeuristicMaxStation, HeuristicAll}

// String returns the canonical name of h.
func (h Heuristic) String() string {
	switch h {
	case HeuristicMaxDeliver:
		return "max_distance_to_deliver_passenger"
	case HeuristicMaxStation:
		return "max_distance_to_station"
	case HeuristicAll:
		return "all"
	default:
		return "none"
	}
}

// ParseHeuristic maps a name to its Heuristic. Both the canonical names and the
// short command-line spellings are accepted, case-insensitively; anything else
// falls back to HeuristicNone.
func ParseHeuristic(name string) Heuristic {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "max_distance_to_deliver_passenger", "max_distance_passenger", "deliver":
		return HeuristicMaxDeliver
	case "max_distance_to_station", "max_distance_station", "station":
		return HeuristicMaxStation
	case "all":
		return HeuristicAll
	default:
		return HeuristicNone
	}
}

// HashMode selects what the identity hash of a state covers.
type HashMode int

const (
	// HashWorld hashes only the world configuration (bus position, bus manifest,
	// every stop's manifest). The same configuration reached along different
	// paths shares one id, so the closed list prunes it.
	HashWorld HashMode = iota

	// HashLineage additionally folds the parent's id into the hash, so equal
	// configurations with different parents stay distinct. Manifests are hashed
	// in stored order.
	HashLineage
)

// String returns "world" or "lineage".
func (m HashMode) String() string {
	if m == HashLineage {
		return "lineage"
	}
	return "world"
}

// Options configures the initial state.
type Options struct {
	Heuristic Heuristic
	HashMode  HashMode
}

// Option is a functional option for New.
type Option func(*Options)

// WithHeuristic selects the heuristic shared by every state of the search.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) { o.Heuristic = h }
}

// WithHashMode selects the identity hash mode shared by every state of the search.
func WithHashMode(m HashMode) Option {
	return func(o *Options) { o.HashMode = m }
}
