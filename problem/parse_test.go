// SPDX-License-Identifier: MIT

package problem_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/schoolbus/problem"
	"github.com/katalvlaran/schoolbus/solver"
	"github.com/katalvlaran/schoolbus/state"
	"github.com/katalvlaran/schoolbus/transit"
)

func TestParseFile_NineStops(t *testing.T) {
	in, err := problem.ParseFile("testdata/nine_stops.prob")
	require.NoError(t, err)

	assert.Equal(t, 9, in.Graph.NodeCount())
	c, ok := in.Graph.Cost(1, 2)
	require.True(t, ok)
	assert.Equal(t, int64(12), c)
	c, ok = in.Graph.Cost(4, 3)
	require.True(t, ok)
	assert.Equal(t, int64(13), c)
	_, ok = in.Graph.Cost(1, 3)
	assert.False(t, ok)

	assert.Equal(t, []state.School{{ID: 1, Stop: 6}, {ID: 2, Stop: 3}, {ID: 3, Stop: 8}}, in.Schools)
	assert.Equal(t, state.Bus{Origin: 1, Current: 1, Capacity: 5}, in.Bus)
	assert.Equal(t, 7, in.Passengers())

	require.Len(t, in.Stops, 4)
	assert.Equal(t, 2, in.Stops[0].ID)
	assert.Equal(t, []state.Passenger{{Origin: 2, Destination: 3}, {Origin: 2, Destination: 8}}, in.Stops[0].Passengers)
	assert.Equal(t, 7, in.Stops[3].ID)
	assert.Equal(t, []state.Passenger{
		{Origin: 7, Destination: 6},
		{Origin: 7, Destination: 6},
		{Origin: 7, Destination: 3},
	}, in.Stops[3].Passengers)
}

func TestParseFile_Solves(t *testing.T) {
	in, err := problem.ParseFile("testdata/four_stops.prob")
	require.NoError(t, err)
	assert.Equal(t, int64(11), in.Graph.ShortestPathCost(1, 4))

	sv, err := in.Solver(solver.WithHeuristic(state.HeuristicAll))
	require.NoError(t, err)
	res, err := sv.Solve(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.True(t, strings.HasPrefix(res.Route, "P1 "), res.Route)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := problem.ParseFile("testdata/does_not_exist.prob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist.prob")
}

func TestParse_Flexible(t *testing.T) {
	src := `
   P1 P2

P1 -- 4
P2 4  --
B: P2 3
P1: 1 C7
C7: P2
P1: 2 C7
`
	in, err := problem.Parse(strings.NewReader(src), transit.WithoutRowCache())
	require.NoError(t, err)
	assert.Equal(t, state.Bus{Origin: 2, Current: 2, Capacity: 3}, in.Bus)
	require.Len(t, in.Stops, 1, "entries for one stop merge")
	assert.Len(t, in.Stops[0].Passengers, 3)
	assert.Equal(t, 2, in.Stops[0].Passengers[0].Destination)
}

func TestParse_NoPassengers(t *testing.T) {
	in, err := problem.Parse(strings.NewReader("P1\nP1 --\nB: P1 0\n"))
	require.NoError(t, err)
	assert.Zero(t, in.Passengers())
	assert.Empty(t, in.Schools)

	sv, err := in.Solver()
	require.NoError(t, err)
	res, err := sv.Solve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "P1", res.Route)
}

func TestParse_Errors(t *testing.T) {
	const matrix = "P1 P2\nP1 -- 1\nP2 1 --\n"
	cases := []struct {
		name string
		src  string
		want error
		line string
	}{
		{"empty", "", problem.ErrSyntax, "line 0"},
		{"bad header", "P1 P3\n", problem.ErrSyntax, "line 1"},
		{"missing row", "P1 P2\nP1 -- 1\n", problem.ErrSyntax, ""},
		{"short row", "P1 P2\nP1 --\nP2 1 --\nB: P1 1\n", problem.ErrSyntax, "line 2"},
		{"wrong row label", "P1 P2\nP2 -- 1\nP1 1 --\nB: P1 1\n", problem.ErrSyntax, "line 2"},
		{"bad cost", "P1 P2\nP1 -- x\nP2 1 --\nB: P1 1\n", problem.ErrSyntax, "line 2"},
		{"negative cost", "P1 P2\nP1 -- -3\nP2 1 --\nB: P1 1\n", problem.ErrSyntax, "line 2"},
		{"bad school", matrix + "C1 P2\nB: P1 1\n", problem.ErrSyntax, "line 4"},
		{"bad station", matrix + "C1: P2\nP1: one C1\nB: P1 1\n", problem.ErrSyntax, "line 5"},
		{"unknown school", matrix + "C1: P2\nP1: 1 C4\nB: P1 1\n", problem.ErrUnknownSchool, "line 5"},
		{"bad bus", matrix + "B: P1\n", problem.ErrSyntax, "line 4"},
		{"two buses", matrix + "B: P1 1\nB: P2 1\n", problem.ErrSyntax, "line 5"},
		{"garbage", matrix + "hello\n", problem.ErrSyntax, "line 4"},
		{"no bus", matrix + "C1: P2\n", problem.ErrMissingBus, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := problem.Parse(strings.NewReader(tc.src))
			require.ErrorIs(t, err, tc.want)
			if tc.line != "" {
				assert.Contains(t, err.Error(), tc.line)
			}
		})
	}
}
