// SPDX-License-Identifier: MIT

package ledger

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// Sentinel errors for ledger access.
var (
	// ErrRecordNotFound indicates Recover was asked for an id never inserted.
	ErrRecordNotFound = errors.New("ledger: record not found")

	// ErrInvalidRecord indicates a record that is flagged both embarking and disembarking.
	ErrInvalidRecord = errors.New("ledger: record is both embarking and disembarking")
)

// Record is the compact trace of one expanded search state: enough to replay
// the route, nothing more.
type Record struct {
	// ID is the state's identity hash.
	ID uint64

	// ParentID is the identity of the state this one was generated from;
	// zero for the initial state.
	ParentID uint64

	// Stop is the bus position in this state.
	Stop int

	// Embarking is set when the state was produced by boarding a passenger.
	Embarking bool

	// Disembarking is set when the state was produced by dropping a passenger off.
	Disembarking bool

	// Destination is the destination stop of the boarded or dropped passenger;
	// zero for moves.
	Destination int
}

// IsMove reports whether the record was produced by relocating the bus
// (or is the initial state).
func (r Record) IsMove() bool { return !r.Embarking && !r.Disembarking }

// Validate checks the embark/disembark exclusivity invariant.
func (r Record) Validate() error {
	if r.Embarking && r.Disembarking {
		return fmt.Errorf("%w: id=%d", ErrInvalidRecord, r.ID)
	}
	return nil
}

// Ledger is the closed list: every record the search has fully expanded,
// keyed by state id. The Ledger owns its records; they never change once stored.
//
// A Ledger is not safe for concurrent mutation; the solver owns it exclusively.
type Ledger struct {
	records map[uint64]Record
}

// New returns an empty Ledger.
func New() *Ledger {
	return &Ledger{records: make(map[uint64]Record)}
}

// Insert stores r keyed by r.ID. The first record for an id wins: a duplicate
// id leaves the ledger unchanged and Insert returns false.
//
// Complexity: O(1) amortised.
func (l *Ledger) Insert(r Record) bool {
	if _, ok := l.records[r.ID]; ok {
		return false
	}
	l.records[r.ID] = r
	return true
}

// InsertChecked validates r before inserting it. Duplicate ids are not an error.
func (l *Ledger) InsertChecked(r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	l.Insert(r)
	return nil
}

// Contains reports whether a state with this id has already been expanded.
func (l *Ledger) Contains(id uint64) bool {
	_, ok := l.records[id]
	return ok
}

// Lookup reports whether the state described by r has already been expanded.
func (l *Ledger) Lookup(r Record) bool { return l.Contains(r.ID) }

// Recover returns the record stored under id, or ErrRecordNotFound.
func (l *Ledger) Recover(id uint64) (Record, error) {
	r, ok := l.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: id=%d", ErrRecordNotFound, id)
	}
	return r, nil
}

// Len returns the number of stored records.
func (l *Ledger) Len() int { return len(l.records) }

// IDs returns every stored id in ascending order.
//
// Complexity: O(n log n).
func (l *Ledger) IDs() []uint64 {
	ids := make([]uint64, 0, len(l.records))
	for id := range l.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
