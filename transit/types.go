// SPDX-License-Identifier: MIT
// Package transit defines the immutable transit graph over numbered stops,
// its construction options and sentinel errors.
//
// Errors:
//
//	ErrMalformedTopology - umbrella category for every construction failure.
//	ErrEmptyGraph        - node count is not positive.
//	ErrStopOutOfRange    - an edge or matrix cell references a stop outside [1, n].
//	ErrNegativeCost      - an edge carries a negative cost.
//	ErrNonSquare         - an adjacency matrix row has the wrong length.
package transit

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for graph construction. Every specific error wraps
// ErrMalformedTopology so callers can match the whole category with errors.Is.
var (
	// ErrMalformedTopology is the category of all graph construction failures.
	ErrMalformedTopology = errors.New("transit: malformed topology")

	// ErrEmptyGraph indicates a non-positive node count.
	ErrEmptyGraph = fmt.Errorf("%w: node count must be positive", ErrMalformedTopology)

	// ErrStopOutOfRange indicates a stop id outside [1, NodeCount].
	ErrStopOutOfRange = fmt.Errorf("%w: stop id out of range", ErrMalformedTopology)

	// ErrNegativeCost indicates an edge with a negative cost.
	ErrNegativeCost = fmt.Errorf("%w: negative edge cost", ErrMalformedTopology)

	// ErrNonSquare indicates an adjacency matrix whose rows are not n×n.
	ErrNonSquare = fmt.Errorf("%w: adjacency matrix is not square", ErrMalformedTopology)
)

// Infinity is the saturating "unreachable" cost. No reachable path sum can
// reach it because AddCost clamps at this value.
const Infinity int64 = math.MaxInt64

// NoEdge marks an absent edge in an adjacency matrix passed to NewFromMatrix.
const NoEdge int64 = -1

// DefaultRowCacheSize is the number of single-source cost rows memoised by default.
const DefaultRowCacheSize = 256

// Edge is a directed (source → destination) connection with a non-negative cost.
// Stop ids are 1-based.
type Edge struct {
	From int
	To   int
	Cost int64
}

// Transition is one outgoing entry of a stop's adjacency list.
type Transition struct {
	To   int
	Cost int64
}

// Options configures graph construction.
type Options struct {
	// RowCacheSize bounds the LRU of memoised shortest-path rows.
	// Zero disables memoisation entirely.
	RowCacheSize int
}

// Option is a functional option for New and NewFromMatrix.
type Option func(*Options)

// WithRowCache sets the capacity of the shortest-path row cache.
// Panics if size is not positive; use WithoutRowCache to disable caching.
func WithRowCache(size int) Option {
	if size <= 0 {
		panic("transit: WithRowCache size must be positive")
	}
	return func(o *Options) { o.RowCacheSize = size }
}

// WithoutRowCache disables shortest-path memoisation: every query recomputes
// the Bellman-Ford relaxation from scratch.
func WithoutRowCache() Option {
	return func(o *Options) { o.RowCacheSize = 0 }
}

// DefaultOptions returns the construction defaults.
func DefaultOptions() Options {
	return Options{RowCacheSize: DefaultRowCacheSize}
}

// AddCost returns a+b saturated at Infinity. Both operands must be non-negative.
func AddCost(a, b int64) int64 {
	if a >= Infinity-b {
		return Infinity
	}
	return a + b
}
