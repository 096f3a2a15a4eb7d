// SPDX-License-Identifier: MIT

package solver

import (
	"container/heap"

	"github.com/katalvlaran/schoolbus/state"
)

// entry is one open-list slot. seq is the push order and breaks ties between
// equal total costs first-in first-out.
type entry struct {
	st  *state.State
	key int64
	seq uint64
}

// frontier is a binary min-heap over (key, seq).
type frontier struct {
	items []entry
	seq   uint64
}

func (f *frontier) Len() int { return len(f.items) }
func (f *frontier) Less(i, j int) bool {
	a, b := f.items[i], f.items[j]
	if a.key != b.key {
		return a.key < b.key
	}
	return a.seq < b.seq
}
func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) { f.items = append(f.items, x.(entry)) }

// Pop removes the last slot and clears it so the heap holds no stale pointer.
func (f *frontier) Pop() any {
	n := len(f.items) - 1
	e := f.items[n]
	f.items[n] = entry{}
	f.items = f.items[:n]
	return e
}

// push enqueues s keyed by its total cost.
func (f *frontier) push(s *state.State) {
	heap.Push(f, entry{st: s, key: s.TotalCost(), seq: f.seq})
	f.seq++
}

// pop hands the cheapest state to the caller; the frontier keeps no reference.
func (f *frontier) pop() *state.State {
	return heap.Pop(f).(entry).st
}

// peekKey returns the smallest key, or -1 when empty.
func (f *frontier) peekKey() int64 {
	if len(f.items) == 0 {
		return -1
	}
	return f.items[0].key
}

// release drops every remaining state at teardown.
func (f *frontier) release() {
	clear(f.items)
	f.items = f.items[:0]
}
