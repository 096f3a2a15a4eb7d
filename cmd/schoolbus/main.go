// SPDX-License-Identifier: MIT

// Command schoolbus solves a school-bus routing problem file and writes the
// route and search statistics next to it.
//
//	schoolbus [flags] <problem.prob> [heuristic]
//
// Settings come from defaults, then -config, then SCHOOLBUS_* variables (also
// read from -env), then flags, then the positional heuristic.
// Exit status: 0 solved, 2 no solution, 1 error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"text/tabwriter"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/schoolbus/config"
	"github.com/katalvlaran/schoolbus/problem"
	"github.com/katalvlaran/schoolbus/report"
	"github.com/katalvlaran/schoolbus/solver"
	"github.com/katalvlaran/schoolbus/state"
)

const (
	exitSolved     = 0
	exitError      = 1
	exitNoSolution = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process globals.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schoolbus", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath    = fs.String("config", "", "YAML configuration file")
		envFile       = fs.String("env", ".env", "dotenv file with SCHOOLBUS_* variables")
		heuristic     = fs.String("heuristic", "", "none | max_distance_to_deliver_passenger | max_distance_to_station | all")
		maxExpansions = fs.Uint64("max-expansions", 0, "expansion budget, 0 for unlimited")
		timeout       = fs.Duration("timeout", 0, "wall-clock budget, 0 for unlimited")
		lineageHash   = fs.Bool("lineage-hash", false, "fold the parent id into state identity")
		noFeasibility = fs.Bool("no-feasibility", false, "skip the reachability pre-check")
		compare       = fs.Bool("compare", false, "run every heuristic concurrently and print a comparison")
		outDir        = fs.String("out", "", "directory for .statistics and .output files")
		logLevel      = fs.String("log-level", "", "debug | info | warn | error")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: schoolbus [flags] <problem.prob> [heuristic]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return exitError
	}

	// 1) Settings
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	env, err := config.Environ(*envFile)
	if err == nil {
		err = cfg.ApplyEnv(env)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "heuristic":
			cfg.Heuristic = *heuristic
		case "max-expansions":
			cfg.MaxExpansions = *maxExpansions
		case "timeout":
			cfg.Timeout = *timeout
		case "lineage-hash":
			cfg.LineageHash = *lineageHash
		case "no-feasibility":
			cfg.FeasibilityCheck = !*noFeasibility
		case "out":
			cfg.OutputDir = *outDir
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if fs.NArg() == 2 {
		cfg.Heuristic = fs.Arg(1)
	}
	if err = cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// 2) Problem
	path := fs.Arg(0)
	in, err := problem.ParseFile(path, cfg.TransitOptions()...)
	if err != nil {
		logger.Error("load problem", slog.Any("err", err))
		return exitError
	}
	logger.Info("problem loaded",
		slog.String("path", path),
		slog.Int("stops", in.Graph.NodeCount()),
		slog.Int("edges", in.Graph.EdgeCount()),
		slog.Int("schools", len(in.Schools)),
		slog.Int("passengers", in.Passengers()),
	)

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	// 3) Search
	if *compare {
		return runCompare(ctx, in, cfg, logger, stdout)
	}
	return runSingle(ctx, in, cfg, path, logger, stdout)
}

func runSingle(ctx context.Context, in *problem.Instance, cfg config.Config, path string, logger *slog.Logger, stdout io.Writer) int {
	h := state.ParseHeuristic(cfg.Heuristic)
	sv, err := in.Solver(cfg.SolverOptions(h, logger)...)
	if err != nil {
		logger.Error("build solver", slog.Any("err", err))
		return exitError
	}
	res, err := sv.Solve(ctx)
	if err != nil {
		logger.Error("search failed", slog.String("status", res.Status.String()), slog.Any("err", err))
		return exitError
	}

	base := path
	if cfg.OutputDir != "" {
		base = filepath.Join(cfg.OutputDir, filepath.Base(path))
	}
	written, err := report.WriteFiles(base, res)
	if err != nil {
		logger.Error("write report", slog.Any("err", err))
		return exitError
	}
	logger.Debug("report written", slog.Any("files", written))

	if err = report.WriteSolution(stdout, res); err == nil {
		err = report.WriteStatistics(stdout, res)
	}
	if err != nil {
		logger.Error("write summary", slog.Any("err", err))
		return exitError
	}
	if !res.Solved {
		fmt.Fprintln(stdout, "No solution could be found.")
		return exitNoSolution
	}
	return exitSolved
}

// runCompare solves the instance once per heuristic, concurrently. The graph
// row cache is shared between the searches.
func runCompare(ctx context.Context, in *problem.Instance, cfg config.Config, logger *slog.Logger, stdout io.Writer) int {
	results := make([]*solver.Result, len(state.Heuristics))
	failures := make([]error, len(state.Heuristics))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, h := range state.Heuristics {
		i, h := i, h
		g.Go(func() error {
			sv, err := in.Solver(cfg.SolverOptions(h, logger.With(slog.String("heuristic", h.String())))...)
			if err != nil {
				return err
			}
			res, err := sv.Solve(gctx)
			results[i] = res
			if err != nil {
				if errors.Is(err, solver.ErrExpansionLimit) || errors.Is(err, context.DeadlineExceeded) {
					failures[i] = err
					return nil
				}
				return fmt.Errorf("%s: %w", h, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("comparison failed", slog.Any("err", err))
		return exitError
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HEURISTIC\tSTATUS\tCOST\tSTOPS\tEXPANSIONS\tTIME")
	solved := false
	for i, h := range state.Heuristics {
		res := results[i]
		status := res.Status.String()
		if failures[i] != nil {
			status = failures[i].Error()
		}
		solved = solved || res.Solved
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			h, status, res.Cost, res.Stops, res.Expansions, res.Elapsed.Round(time.Microsecond))
	}
	if err := tw.Flush(); err != nil {
		logger.Error("write comparison", slog.Any("err", err))
		return exitError
	}
	if !solved {
		return exitNoSolution
	}
	return exitSolved
}
