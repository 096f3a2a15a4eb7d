// Package transit_test provides runnable examples for the transit graph.
package transit_test

import (
	"fmt"

	"github.com/katalvlaran/schoolbus/transit"
)

// ExampleGraph_ShortestPathCost builds the four-stop reference network and
// asks for the cheapest way from P1 to P4.
func ExampleGraph_ShortestPathCost() {
	g, err := transit.New(4, fourStopEdges())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(g.ShortestPathCost(1, 4))
	// Output: 11
}

// ExampleNewFromMatrix shows the matrix form used by problem files, where
// NoEdge stands for the "--" cells.
func ExampleNewFromMatrix() {
	x := transit.NoEdge
	g, err := transit.NewFromMatrix([][]int64{
		{x, 4, x},
		{4, x, 7},
		{x, 7, x},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(g)
	fmt.Println(g.ShortestPaths(1))
	// Output:
	// P1: P2(4)
	// P2: P1(4) P3(7)
	// P3: P2(7)
	// [0 4 11]
}
