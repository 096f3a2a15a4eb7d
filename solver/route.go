// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/schoolbus/ledger"
)

// Tally counts passengers of one visit that share a destination.
// School is zero when no school sits at Stop.
type Tally struct {
	School int
	Stop   int
	Count  int
}

// String renders "<count> C<school>", or "<count> P<stop>" without a school.
func (t Tally) String() string {
	if t.School > 0 {
		return fmt.Sprintf("%d C%d", t.Count, t.School)
	}
	return fmt.Sprintf("%d P%d", t.Count, t.Stop)
}

// Step is one stop visit of the route. Alighting lists drop-offs ("B:"),
// Boarding lists pick-ups ("S:"), each grouped by destination in order of
// first appearance.
type Step struct {
	Stop      int
	Alighting []Tally
	Boarding  []Tally
}

// String renders the visit, e.g. "P2 (B: 1 C1; S: 2 C3, 1 C2)".
func (s Step) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "P%d", s.Stop)
	if len(s.Alighting) == 0 && len(s.Boarding) == 0 {
		return sb.String()
	}
	sb.WriteString(" (")
	if len(s.Alighting) > 0 {
		sb.WriteString("B: ")
		writeTallies(&sb, s.Alighting)
	}
	if len(s.Boarding) > 0 {
		if len(s.Alighting) > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString("S: ")
		writeTallies(&sb, s.Boarding)
	}
	sb.WriteByte(')')
	return sb.String()
}

func writeTallies(sb *strings.Builder, ts []Tally) {
	for i, t := range ts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
}

// reconstruct walks parent ids from goal back to initial and returns the
// chain in forward order (initial first, goal last).
//
// Every record but the goal must be in the ledger. A missing id, or a chain
// longer than the ledger can hold, yields ErrCorruptSearchState.
func reconstruct(closed *ledger.Ledger, goal, initial ledger.Record) ([]ledger.Record, error) {
	chain := []ledger.Record{goal}
	cur := goal
	for cur != initial {
		if len(chain) > closed.Len()+1 {
			return nil, fmt.Errorf("%w: parent chain exceeds %d records", ErrCorruptSearchState, closed.Len())
		}
		parent, err := closed.Recover(cur.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptSearchState, err)
		}
		chain = append(chain, parent)
		cur = parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// steps folds a forward record chain into stop visits. Each move record opens
// a visit; embark and disembark records attach to the visit they happen at.
func (s *Solver) steps(chain []ledger.Record) []Step {
	out := make([]Step, 0, len(chain))
	for _, rec := range chain {
		if rec.IsMove() || len(out) == 0 {
			out = append(out, Step{Stop: rec.Stop})
			if rec.IsMove() {
				continue
			}
		}
		last := &out[len(out)-1]
		if rec.Disembarking {
			last.Alighting = s.tally(last.Alighting, rec.Destination)
		} else {
			last.Boarding = s.tally(last.Boarding, rec.Destination)
		}
	}
	return out
}

func (s *Solver) tally(ts []Tally, destination int) []Tally {
	for i := range ts {
		if ts[i].Stop == destination {
			ts[i].Count++
			return ts
		}
	}
	return append(ts, Tally{School: s.schoolAt[destination], Stop: destination, Count: 1})
}

// renderRoute joins the visits with " -> ".
func renderRoute(steps []Step) string {
	parts := make([]string, len(steps))
	for i, st := range steps {
		parts[i] = st.String()
	}
	return strings.Join(parts, " -> ")
}
