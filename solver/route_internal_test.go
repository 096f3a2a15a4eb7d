// SPDX-License-Identifier: MIT

package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/schoolbus/ledger"
)

func TestReconstruct_Chain(t *testing.T) {
	closed := ledger.New()
	initial := ledger.Record{ID: 1, Stop: 1}
	embark := ledger.Record{ID: 2, ParentID: 1, Stop: 1, Embarking: true, Destination: 2}
	move := ledger.Record{ID: 3, ParentID: 2, Stop: 2}
	goal := ledger.Record{ID: 4, ParentID: 3, Stop: 2, Disembarking: true, Destination: 2}
	for _, r := range []ledger.Record{initial, embark, move} {
		require.True(t, closed.Insert(r))
	}

	chain, err := reconstruct(closed, goal, initial)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Record{initial, embark, move, goal}, chain)

	s := &Solver{schoolAt: map[int]int{2: 6}}
	steps := s.steps(chain)
	require.Len(t, steps, 2)
	assert.Equal(t, "P1 (S: 1 C6) -> P2 (B: 1 C6)", renderRoute(steps))
}

func TestReconstruct_MissingParent(t *testing.T) {
	closed := ledger.New()
	initial := ledger.Record{ID: 1, Stop: 1}
	closed.Insert(initial)
	goal := ledger.Record{ID: 9, ParentID: 8, Stop: 1}

	_, err := reconstruct(closed, goal, initial)
	require.ErrorIs(t, err, ErrCorruptSearchState)
	require.ErrorIs(t, err, ledger.ErrRecordNotFound)
}

func TestReconstruct_Cycle(t *testing.T) {
	closed := ledger.New()
	initial := ledger.Record{ID: 1, Stop: 1}
	closed.Insert(initial)
	closed.Insert(ledger.Record{ID: 2, ParentID: 3, Stop: 2})
	closed.Insert(ledger.Record{ID: 3, ParentID: 2, Stop: 3})

	_, err := reconstruct(closed, ledger.Record{ID: 4, ParentID: 2, Stop: 1}, initial)
	require.ErrorIs(t, err, ErrCorruptSearchState)
}

func TestSteps_GroupsPerVisit(t *testing.T) {
	s := &Solver{schoolAt: map[int]int{3: 1, 4: 2}}
	chain := []ledger.Record{
		{ID: 1, Stop: 2},
		{ID: 2, Stop: 2, Embarking: true, Destination: 4},
		{ID: 3, Stop: 2, Disembarking: true, Destination: 2},
		{ID: 4, Stop: 2, Embarking: true, Destination: 3},
		{ID: 5, Stop: 2, Embarking: true, Destination: 4},
		{ID: 6, Stop: 3},
	}
	steps := s.steps(chain)
	require.Len(t, steps, 2)
	assert.Equal(t, "P2 (B: 1 P2; S: 2 C2, 1 C1) -> P3", renderRoute(steps))
}

func TestFrontier_FIFOOnTies(t *testing.T) {
	f := &frontier{}
	assert.Equal(t, int64(-1), f.peekKey())
	f.items = append(f.items, entry{key: 5, seq: 0}, entry{key: 5, seq: 1}, entry{key: 3, seq: 2})
	f.seq = 3
	assert.True(t, f.Less(2, 0))
	assert.True(t, f.Less(0, 1))
	assert.False(t, f.Less(1, 0))

	popped := f.Pop().(entry)
	assert.Equal(t, uint64(2), popped.seq)
	assert.Len(t, f.items, 2)
	assert.Nil(t, f.items[:3][2].st, "popped slot is cleared")

	f.release()
	assert.Zero(t, f.Len())
}
