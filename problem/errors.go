// SPDX-License-Identifier: MIT

package problem

import "errors"

// Sentinel errors returned by Parse and ParseFile.
var (
	// ErrSyntax indicates a malformed line; the wrapped message carries its number.
	ErrSyntax = errors.New("problem: syntax error")

	// ErrUnknownSchool indicates a passenger heading to a school that was never declared.
	ErrUnknownSchool = errors.New("problem: unknown school")

	// ErrMissingBus indicates a problem without a "B:" line.
	ErrMissingBus = errors.New("problem: missing bus line")
)
