// SPDX-License-Identifier: MIT

package solver_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/schoolbus/solver"
	"github.com/katalvlaran/schoolbus/state"
	"github.com/katalvlaran/schoolbus/transit"
)

// ExampleSolver_Solve routes one student from P1 to school C1 at P2 and back.
func ExampleSolver_Solve() {
	g, _ := transit.New(2, []transit.Edge{
		{From: 1, To: 2, Cost: 5},
		{From: 2, To: 1, Cost: 5},
	})
	schools := []state.School{{ID: 1, Stop: 2}}
	stops := []state.Stop{{ID: 1, Passengers: []state.Passenger{{Origin: 1, Destination: 2}}}}

	sv, err := solver.New(g, schools, stops, state.Bus{Origin: 1, Capacity: 1},
		solver.WithHeuristic(state.HeuristicAll))
	if err != nil {
		fmt.Println(err)
		return
	}
	res, err := sv.Solve(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Status, res.Cost, res.Stops)
	fmt.Println(res.Route)
	// Output:
	// solved 12 3
	// P1 (S: 1 C1) -> P2 (B: 1 C1) -> P1
}
