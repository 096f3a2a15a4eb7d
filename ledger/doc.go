// SPDX-License-Identifier: MIT

// Package ledger implements the closed list of the bus-routing search: a store
// of compact expansion records keyed by state identity.
//
// The full search state is dropped once expanded; only its Record survives
// here. Records link to their parent by id, so the winning route is rebuilt by
// walking Recover(record.ParentID) back to the initial state.
//
// Recover never dereferences a missing entry: an unknown id yields
// ErrRecordNotFound, which the solver turns into a corrupt-search error.
package ledger
