// SPDX-License-Identifier: MIT

package problem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/schoolbus/solver"
	"github.com/katalvlaran/schoolbus/state"
	"github.com/katalvlaran/schoolbus/transit"
)

// noEdgeCell marks a missing edge in the adjacency matrix.
const noEdgeCell = "--"

// Instance is a parsed problem, ready to hand to solver.New.
type Instance struct {
	Graph   *transit.Graph
	Schools []state.School
	Stops   []state.Stop
	Bus     state.Bus
}

// Passengers returns the number of students waiting across all stops.
func (in *Instance) Passengers() int {
	n := 0
	for _, st := range in.Stops {
		n += len(st.Passengers)
	}
	return n
}

// Solver builds a solver for the instance.
func (in *Instance) Solver(opts ...solver.Option) (*solver.Solver, error) {
	return solver.New(in.Graph, in.Schools, in.Stops, in.Bus, opts...)
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, opts ...transit.Option) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("problem: open %s: %w", path, err)
	}
	defer f.Close()

	in, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// Parse reads one problem from r. opts are forwarded to transit.NewFromMatrix.
//
// Implementation:
//   - Stage 1: Header line gives n, the stop count; labels must be P1..Pn in order.
//   - Stage 2: The next n lines are adjacency rows.
//   - Stage 3: Remaining lines are dispatched by prefix to the school, station and
//     bus parsers. Station lines are resolved after all lines are read, so schools
//     may be declared after the stations that use them.
func Parse(r io.Reader, opts ...transit.Option) (*Instance, error) {
	p := &parser{sc: bufio.NewScanner(r)}

	// 1) Header
	header, ok := p.next()
	if !ok {
		return nil, p.fail("empty input")
	}
	labels := strings.Fields(header)
	for i, lbl := range labels {
		if id, err := stopID(lbl); err != nil || id != i+1 {
			return nil, p.fail("header label %q, want P%d", lbl, i+1)
		}
	}
	n := len(labels)

	// 2) Adjacency rows
	rows := make([][]int64, n)
	for i := range rows {
		line, ok := p.next()
		if !ok {
			return nil, p.fail("missing adjacency row for P%d", i+1)
		}
		row, err := p.row(line, i+1, n)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	g, err := transit.NewFromMatrix(rows, opts...)
	if err != nil {
		return nil, fmt.Errorf("problem: adjacency matrix: %w", err)
	}

	// 3) Schools, stations, bus
	in := &Instance{Graph: g}
	var (
		stations    []stationLine
		seenSchools bool
		seenBus     bool
	)
	for {
		line, ok := p.next()
		if !ok {
			break
		}
		switch {
		case strings.HasPrefix(line, "B:"):
			if seenBus {
				return nil, p.fail("second bus line")
			}
			seenBus = true
			if in.Bus, err = p.bus(line); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "C"):
			if seenSchools {
				return nil, p.fail("second school line")
			}
			seenSchools = true
			if in.Schools, err = p.schools(line); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "P"):
			st, err := p.stations(line)
			if err != nil {
				return nil, err
			}
			stations = append(stations, st...)
		default:
			return nil, p.fail("unrecognised line %q", line)
		}
	}
	if !seenBus {
		return nil, ErrMissingBus
	}

	if in.Stops, err = resolve(stations, in.Schools); err != nil {
		return nil, err
	}
	return in, nil
}

// parser tracks the current line number for error messages.
type parser struct {
	sc   *bufio.Scanner
	line int
}

// next returns the next non-blank, trimmed line.
func (p *parser) next() (string, bool) {
	for p.sc.Scan() {
		p.line++
		if s := strings.TrimSpace(p.sc.Text()); s != "" {
			return s, true
		}
	}
	return "", false
}

func (p *parser) fail(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, p.line, fmt.Sprintf(format, args...))
}

func (p *parser) row(line string, stop, n int) ([]int64, error) {
	fields := strings.Fields(line)
	if len(fields) != n+1 {
		return nil, p.fail("row P%d has %d cells, want %d", stop, len(fields)-1, n)
	}
	if id, err := stopID(fields[0]); err != nil || id != stop {
		return nil, p.fail("row label %q, want P%d", fields[0], stop)
	}

	row := make([]int64, n)
	for j, cell := range fields[1:] {
		if cell == noEdgeCell {
			row[j] = transit.NoEdge
			continue
		}
		c, err := strconv.ParseInt(cell, 10, 64)
		if err != nil || c < 0 {
			return nil, p.fail("row P%d cell %d: bad cost %q", stop, j+1, cell)
		}
		row[j] = c
	}
	return row, nil
}

// schools parses "C1: P6; C2: P3".
func (p *parser) schools(line string) ([]state.School, error) {
	var out []state.School
	for _, item := range splitList(line, ";") {
		name, loc, ok := strings.Cut(item, ":")
		if !ok {
			return nil, p.fail("school %q: want C<id>: P<stop>", item)
		}
		id, err := prefixedInt(strings.TrimSpace(name), 'C')
		if err != nil {
			return nil, p.fail("school %q: %v", item, err)
		}
		stop, err := stopID(strings.TrimSpace(loc))
		if err != nil {
			return nil, p.fail("school %q: %v", item, err)
		}
		out = append(out, state.School{ID: id, Stop: stop})
	}
	return out, nil
}

// stationLine is a station entry before school ids are resolved to stops.
type stationLine struct {
	line   int
	stop   int
	groups []group
}

type group struct {
	count  int
	school int
}

// stations parses "P2: 1 C2, 1 C3; P4: 1 C3".
func (p *parser) stations(line string) ([]stationLine, error) {
	var out []stationLine
	for _, item := range splitList(line, ";") {
		name, rest, ok := strings.Cut(item, ":")
		if !ok {
			return nil, p.fail("station %q: want P<stop>: <count> C<school>, ...", item)
		}
		stop, err := stopID(strings.TrimSpace(name))
		if err != nil {
			return nil, p.fail("station %q: %v", item, err)
		}
		st := stationLine{line: p.line, stop: stop}
		for _, g := range splitList(rest, ",") {
			fields := strings.Fields(g)
			if len(fields) != 2 {
				return nil, p.fail("station P%d: group %q: want <count> C<school>", stop, g)
			}
			count, err := strconv.Atoi(fields[0])
			if err != nil || count < 0 {
				return nil, p.fail("station P%d: bad count %q", stop, fields[0])
			}
			school, err := prefixedInt(fields[1], 'C')
			if err != nil {
				return nil, p.fail("station P%d: %v", stop, err)
			}
			st.groups = append(st.groups, group{count: count, school: school})
		}
		out = append(out, st)
	}
	return out, nil
}

// bus parses "B: P1 5".
func (p *parser) bus(line string) (state.Bus, error) {
	fields := strings.Fields(strings.TrimPrefix(line, "B:"))
	if len(fields) != 2 {
		return state.Bus{}, p.fail("bus: want B: P<stop> <capacity>")
	}
	origin, err := stopID(fields[0])
	if err != nil {
		return state.Bus{}, p.fail("bus: %v", err)
	}
	capacity, err := strconv.Atoi(fields[1])
	if err != nil || capacity < 0 {
		return state.Bus{}, p.fail("bus: bad capacity %q", fields[1])
	}
	return state.Bus{Origin: origin, Current: origin, Capacity: capacity}, nil
}

// resolve turns station groups into passengers. Several entries for the same
// stop are merged in file order.
func resolve(stations []stationLine, schools []state.School) ([]state.Stop, error) {
	where := make(map[int]int, len(schools))
	for _, sc := range schools {
		if _, dup := where[sc.ID]; !dup {
			where[sc.ID] = sc.Stop
		}
	}

	index := make(map[int]int, len(stations))
	var out []state.Stop
	for _, st := range stations {
		i, ok := index[st.stop]
		if !ok {
			i = len(out)
			index[st.stop] = i
			out = append(out, state.Stop{ID: st.stop})
		}
		for _, g := range st.groups {
			dest, ok := where[g.school]
			if !ok {
				return nil, fmt.Errorf("%w: C%d at P%d (line %d)", ErrUnknownSchool, g.school, st.stop, st.line)
			}
			for k := 0; k < g.count; k++ {
				out[i].Passengers = append(out[i].Passengers, state.Passenger{Origin: st.stop, Destination: dest})
			}
		}
	}
	return out, nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func stopID(s string) (int, error) { return prefixedInt(s, 'P') }

// prefixedInt parses "<prefix><positive int>", e.g. "P12" or "C3".
func prefixedInt(s string, prefix byte) (int, error) {
	if len(s) < 2 || s[0] != prefix {
		return 0, fmt.Errorf("%q: want %c<number>", s, prefix)
	}
	v, err := strconv.Atoi(s[1:])
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%q: want %c<number>", s, prefix)
	}
	return v, nil
}
