// SPDX-License-Identifier: MIT
// Package solver runs the A* control loop over bus-routing states and
// reconstructs the winning route from the closed list.
//
// Errors:
//
//	ErrInvalidProblem     - the instance cannot be searched (bad schools, stops or bus).
//	ErrCorruptSearchState - the parent chain of the goal does not reach the initial record.
//	ErrExpansionLimit     - the expansion budget ran out before a terminal outcome.
package solver

import (
	"errors"
	"io"
	"time"

	"golang.org/x/exp/slog"

	"github.com/katalvlaran/schoolbus/state"
)

// Sentinel errors returned by New and Solve.
var (
	// ErrInvalidProblem indicates an instance rejected before search.
	ErrInvalidProblem = errors.New("solver: invalid problem")

	// ErrCorruptSearchState indicates a broken parent chain during reconstruction.
	ErrCorruptSearchState = errors.New("solver: corrupt search state")

	// ErrExpansionLimit indicates the search stopped on its expansion budget.
	ErrExpansionLimit = errors.New("solver: expansion limit reached")
)

// DefaultProgressEvery is the number of expansions between progress log lines.
const DefaultProgressEvery = 100000

// Status is the state of the solver's control loop.
type Status int

const (
	// Running means the loop has not reached a terminal outcome.
	Running Status = iota
	// Solved means a goal state was popped.
	Solved
	// Exhausted means no goal is reachable: the frontier ran dry or the
	// instance failed the feasibility check.
	Exhausted
	// Aborted means the loop was stopped by cancellation, by the expansion
	// budget or by an internal error.
	Aborted
)

// String returns the lower-case status name.
func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	case Aborted:
		return "aborted"
	default:
		return "running"
	}
}

// Result is everything a run exposes to its consumers.
type Result struct {
	Status  Status
	Solved  bool
	Elapsed time.Duration

	// Cost is the path cost of the goal state; zero unless solved.
	Cost int64
	// Stops is the number of stop visits in the route, the start included.
	Stops int

	Expansions uint64 // states expanded into the ledger
	Generated  uint64 // successors produced
	Duplicates uint64 // states dropped because their id was already expanded
	Pruned     uint64 // states dropped because no goal is reachable from them

	Route string
	Steps []Step
}

// Options configures a Solver.
type Options struct {
	Heuristic        state.Heuristic
	HashMode         state.HashMode
	MaxExpansions    uint64 // 0 = unlimited
	Logger           *slog.Logger
	ProgressEvery    uint64 // 0 = no progress lines
	FeasibilityCheck bool
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns uniform-cost search with world hashing, no budget,
// a discarding logger and the feasibility pre-check enabled.
func DefaultOptions() Options {
	return Options{
		Heuristic:        state.HeuristicNone,
		HashMode:         state.HashWorld,
		Logger:           discardLogger(),
		ProgressEvery:    DefaultProgressEvery,
		FeasibilityCheck: true,
	}
}

// WithHeuristic selects the remaining-cost estimate.
func WithHeuristic(h state.Heuristic) Option {
	return func(o *Options) { o.Heuristic = h }
}

// WithHashMode selects the state identity mode.
func WithHashMode(m state.HashMode) Option {
	return func(o *Options) { o.HashMode = m }
}

// WithMaxExpansions bounds the number of expanded states. Zero disables the bound.
func WithMaxExpansions(n uint64) Option {
	return func(o *Options) { o.MaxExpansions = n }
}

// WithLogger routes search logs to l. A nil logger discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = discardLogger()
		}
		o.Logger = l
	}
}

// WithProgressEvery emits a Debug progress line every n expansions. Zero disables it.
func WithProgressEvery(n uint64) Option {
	return func(o *Options) { o.ProgressEvery = n }
}

// WithoutFeasibilityCheck skips the reachability pre-check, so an infeasible
// instance is reported Exhausted only after the frontier runs dry.
func WithoutFeasibilityCheck() Option {
	return func(o *Options) { o.FeasibilityCheck = false }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
