// SPDX-License-Identifier: MIT

// Package problem loads bus-routing instances from the plain-text .prob format.
//
// A problem file holds, in order:
//
//	   P1 P2 P3 P4            header naming every stop
//	P1 -- 2  3  19            one adjacency row per stop; "--" means no edge
//	P2 2  -- 1  9
//	P3 3  1  -- --
//	P4 1  9  -- --
//	C1: P3; C2: P4            schools and the stops they sit on
//	P2: 1 C1, 2 C2; P4: 1 C1  waiting students per stop, counted per school
//	B: P1 5                   bus origin and capacity
//
// Blank lines are ignored. After the matrix the school, station and bus lines
// are recognised by their prefix ("C", "P", "B:") and may appear in any order;
// only the bus line is mandatory. A student's destination is the stop of the
// school it heads to.
//
// Errors:
//
//	ErrSyntax        - malformed line (message includes the line number).
//	ErrUnknownSchool - a station line references an undeclared school.
//	ErrMissingBus    - no bus line.
package problem
