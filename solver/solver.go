// SPDX-License-Identifier: MIT

package solver

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/katalvlaran/schoolbus/ledger"
	"github.com/katalvlaran/schoolbus/state"
	"github.com/katalvlaran/schoolbus/transit"
)

// Solver searches one problem instance. It is immutable after New, and every
// Solve call runs a fresh search with its own frontier and ledger.
type Solver struct {
	graph    *transit.Graph
	schools  []state.School
	schoolAt map[int]int // stop → first school located there
	initial  *state.State
	opts     Options
}

// New validates the instance and builds its initial state.
//
// Preconditions (in order):
//  1. g must be non-nil.
//  2. Every school has a positive, unique id and sits on a stop of g.
//  3. stops and bus satisfy state.New.
//
// Errors: ErrInvalidProblem, wrapping state.ErrInvalidProblem where relevant.
func New(g *transit.Graph, schools []state.School, stops []state.Stop, bus state.Bus, opts ...Option) (*Solver, error) {
	// 1) Build options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate graph and schools
	if g == nil {
		return nil, fmt.Errorf("%w: graph is nil", ErrInvalidProblem)
	}
	schoolAt := make(map[int]int, len(schools))
	ids := make(map[int]struct{}, len(schools))
	for _, sc := range schools {
		if sc.ID <= 0 {
			return nil, fmt.Errorf("%w: school id C%d is not positive", ErrInvalidProblem, sc.ID)
		}
		if _, dup := ids[sc.ID]; dup {
			return nil, fmt.Errorf("%w: school C%d declared twice", ErrInvalidProblem, sc.ID)
		}
		if !g.Contains(sc.Stop) {
			return nil, fmt.Errorf("%w: school C%d at unknown stop P%d", ErrInvalidProblem, sc.ID, sc.Stop)
		}
		ids[sc.ID] = struct{}{}
		if _, taken := schoolAt[sc.Stop]; !taken {
			schoolAt[sc.Stop] = sc.ID
		}
	}

	// 3) Build the initial state
	initial, err := state.New(g, stops, bus,
		state.WithHeuristic(cfg.Heuristic),
		state.WithHashMode(cfg.HashMode),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProblem, err)
	}

	return &Solver{
		graph:    g,
		schools:  append([]state.School(nil), schools...),
		schoolAt: schoolAt,
		initial:  initial,
		opts:     cfg,
	}, nil
}

// Initial returns the initial state of the search.
func (s *Solver) Initial() *state.State { return s.initial }

// Solve runs A* until the first goal is popped, the frontier runs dry, ctx is
// cancelled or the expansion budget is spent.
//
// Implementation:
//   - Stage 1: Feasibility pre-check; an instance with an unreachable obligation
//     is Exhausted without search.
//   - Stage 2: Pop the cheapest state (FIFO among equal total costs).
//     A goal ends the search; an id already in the ledger is dropped as a duplicate.
//   - Stage 3: Expand: generate successors, record the state in the ledger and push
//     every successor that is neither dead nor already expanded.
//   - Stage 4: On success rebuild the route by chasing parent ids through the ledger.
//
// The returned Result is never nil. Exhausted is a normal outcome and carries a nil
// error. Cancellation returns ctx.Err() wrapped; the budget returns ErrExpansionLimit;
// both with status Aborted. A broken parent chain returns ErrCorruptSearchState with
// status Solved and an empty route.
//
// Complexity: O(X log F) heap work for X expansions over a frontier of size F,
// plus successor generation and one Bellman-Ford run per distinct bus position.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r := &runner{
		Solver: s,
		log:    s.opts.Logger,
		open:   &frontier{},
		closed: ledger.New(),
		res:    &Result{Status: Running},
	}
	start := time.Now()
	err := r.run(ctx)
	r.res.Elapsed = time.Since(start)
	r.open.release()

	return r.res, err
}

// runner holds the mutable state of one Solve call.
type runner struct {
	*Solver
	log    *slog.Logger
	open   *frontier
	closed *ledger.Ledger
	res    *Result
}

func (r *runner) run(ctx context.Context) error {
	r.log.Info("search started",
		slog.String("heuristic", r.opts.Heuristic.String()),
		slog.String("hash", r.opts.HashMode.String()),
		slog.Int("stops", r.graph.NodeCount()),
		slog.Int("waiting", r.initial.Waiting()),
		slog.Int("onboard", r.initial.Onboard()),
		slog.Int("capacity", r.initial.Bus().Capacity),
	)

	// 1) Feasibility pre-check
	if r.opts.FeasibilityCheck && !r.feasible() {
		r.res.Status = Exhausted
		r.log.Info("search exhausted", slog.String("reason", "infeasible instance"))
		return nil
	}
	r.enqueue(r.initial)

	for r.open.Len() > 0 {
		// 2) Bound the run
		if err := ctx.Err(); err != nil {
			r.res.Status = Aborted
			r.log.Warn("search aborted", slog.Any("err", err), slog.Uint64("expansions", r.res.Expansions))
			return fmt.Errorf("solver: search aborted: %w", err)
		}
		if r.opts.MaxExpansions > 0 && r.res.Expansions >= r.opts.MaxExpansions {
			r.res.Status = Aborted
			r.log.Warn("search aborted", slog.String("reason", "expansion limit"), slog.Uint64("expansions", r.res.Expansions))
			return fmt.Errorf("%w: %d expansions", ErrExpansionLimit, r.res.Expansions)
		}

		// 3) Pop the cheapest candidate
		cur := r.open.pop()
		if cur.IsGoal() {
			return r.finish(cur)
		}
		if r.closed.Contains(cur.ID()) {
			r.res.Duplicates++
			continue
		}

		// 4) Expand
		next, err := cur.Successors()
		if err != nil {
			r.res.Status = Aborted
			return fmt.Errorf("solver: expand state %d: %w", cur.ID(), err)
		}
		if err = r.closed.InsertChecked(cur.Record()); err != nil {
			r.res.Status = Aborted
			return fmt.Errorf("%w: %w", ErrCorruptSearchState, err)
		}
		r.res.Expansions++
		r.res.Generated += uint64(len(next))
		for _, n := range next {
			r.enqueue(n)
		}

		if r.opts.ProgressEvery > 0 && r.res.Expansions%r.opts.ProgressEvery == 0 {
			r.log.Debug("search progress",
				slog.Uint64("expansions", r.res.Expansions),
				slog.Int("frontier", r.open.Len()),
				slog.Int("ledger", r.closed.Len()),
				slog.Int64("best", r.open.peekKey()),
			)
		}
	}

	// 5) Frontier ran dry
	r.res.Status = Exhausted
	r.log.Info("search exhausted",
		slog.Uint64("expansions", r.res.Expansions),
		slog.Uint64("pruned", r.res.Pruned),
	)
	return nil
}

// enqueue pushes n unless it can never reach a goal or was already expanded.
func (r *runner) enqueue(n *state.State) {
	if n.Dead() {
		r.res.Pruned++
		return
	}
	if r.closed.Contains(n.ID()) {
		r.res.Duplicates++
		return
	}
	r.open.push(n)
}

// finish records the goal and rebuilds the route.
func (r *runner) finish(goal *state.State) error {
	r.res.Status = Solved
	r.res.Solved = true
	r.res.Cost = goal.PathCost()

	chain, err := reconstruct(r.closed, goal.Record(), r.initial.Record())
	if err != nil {
		r.log.Error("route reconstruction failed", slog.Any("err", err))
		return err
	}
	r.res.Steps = r.steps(chain)
	r.res.Stops = len(r.res.Steps)
	r.res.Route = renderRoute(r.res.Steps)

	r.log.Info("solution found",
		slog.Int64("cost", r.res.Cost),
		slog.Int("stops", r.res.Stops),
		slog.Uint64("expansions", r.res.Expansions),
	)
	return nil
}

// feasible reports whether every stop the bus must visit can be reached from
// its position and can reach its origin, and whether waiting passengers fit at all.
func (r *runner) feasible() bool {
	bus := r.initial.Bus()
	required := make([]int, 0, len(bus.Passengers))
	for _, p := range bus.Passengers {
		required = append(required, p.Destination)
	}
	for _, st := range r.initial.Stops() {
		if len(st.Passengers) == 0 {
			continue
		}
		if bus.Capacity == 0 {
			return false
		}
		required = append(required, st.ID)
		for _, p := range st.Passengers {
			required = append(required, p.Destination)
		}
	}

	if bus.Current == bus.Origin {
		return r.graph.StronglyConnected(bus.Origin, required)
	}

	fromBus := r.graph.Reachable(bus.Current)
	if !fromBus[bus.Origin-1] {
		return false
	}
	for _, stop := range required {
		if !fromBus[stop-1] || !r.graph.Reachable(stop)[bus.Origin-1] {
			return false
		}
	}
	return true
}
