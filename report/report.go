// SPDX-License-Identifier: MIT

// Package report writes the outcome of a search: a statistics summary and the
// solution route, either to arbitrary writers or to the "<problem>.statistics"
// and "<problem>.output" files next to the problem.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/schoolbus/solver"
)

// File suffixes appended to the problem path.
const (
	StatisticsSuffix = ".statistics"
	SolutionSuffix   = ".output"
)

// ErrNoResult indicates a nil result was passed to a writer.
var ErrNoResult = errors.New("report: nil result")

// WriteStatistics writes the four-line summary:
//
//	Overall time: 0.001234 seconds
//	Overall cost: 54
//	# Stops: 27
//	# Expansions: 132
func WriteStatistics(w io.Writer, res *solver.Result) error {
	if res == nil {
		return ErrNoResult
	}
	_, err := fmt.Fprintf(w,
		"Overall time: %f seconds\nOverall cost: %d\n# Stops: %d\n# Expansions: %d\n",
		res.Elapsed.Seconds(), res.Cost, res.Stops, res.Expansions,
	)
	return err
}

// WriteSolution writes the route followed by a newline. Unsolved results write nothing.
func WriteSolution(w io.Writer, res *solver.Result) error {
	if res == nil {
		return ErrNoResult
	}
	if !res.Solved {
		return nil
	}
	_, err := fmt.Fprintln(w, res.Route)
	return err
}

// WriteFiles writes base+".statistics" and, when solved, base+".output".
// It returns the paths written.
func WriteFiles(base string, res *solver.Result) ([]string, error) {
	if res == nil {
		return nil, ErrNoResult
	}
	written := make([]string, 0, 2)

	stats := base + StatisticsSuffix
	if err := writeFile(stats, res, WriteStatistics); err != nil {
		return written, err
	}
	written = append(written, stats)

	if !res.Solved {
		return written, nil
	}
	out := base + SolutionSuffix
	if err := writeFile(out, res, WriteSolution); err != nil {
		return written, err
	}
	return append(written, out), nil
}

func writeFile(path string, res *solver.Result, write func(io.Writer, *solver.Result) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("report: close %s: %w", path, cerr)
		}
	}()

	if err = write(f, res); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
