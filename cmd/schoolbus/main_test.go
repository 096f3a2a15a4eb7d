// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fourStops = "../../problem/testdata/four_stops.prob"

func TestRun_Solves(t *testing.T) {
	out := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-out", out, fourStops, "all"}, &stdout, &stderr)
	require.Equal(t, exitSolved, code, stderr.String())

	assert.Contains(t, stdout.String(), "Overall cost:")
	assert.Contains(t, stdout.String(), "P1 ")
	assert.Contains(t, stderr.String(), "heuristic=all")

	route, err := os.ReadFile(filepath.Join(out, "four_stops.prob.output"))
	require.NoError(t, err)
	assert.NotEmpty(t, route)
	_, err = os.Stat(filepath.Join(out, "four_stops.prob.statistics"))
	require.NoError(t, err)
}

func TestRun_Compare(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-compare", "-log-level", "warn", fourStops}, &stdout, &stderr)
	require.Equal(t, exitSolved, code, stderr.String())

	for _, name := range []string{"none", "max_distance_to_deliver_passenger", "max_distance_to_station", "all"} {
		assert.Contains(t, stdout.String(), name)
	}
	assert.Empty(t, stderr.String())
}

func TestRun_NoSolution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "island.prob")
	require.NoError(t, os.WriteFile(path, []byte("P1 P2\nP1 -- --\nP2 -- --\nC1: P2\nP1: 1 C1\nB: P1 1\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{path}, &stdout, &stderr)
	require.Equal(t, exitNoSolution, code, stderr.String())
	assert.Contains(t, stdout.String(), "No solution could be found.")

	_, err := os.Stat(path + ".statistics")
	require.NoError(t, err)
	_, err = os.Stat(path + ".output")
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Budget(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-max-expansions", "1", "-out", t.TempDir(), fourStops}, &stdout, &stderr)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "expansion limit")
}

func TestRun_BadInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitError, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage")

	stderr.Reset()
	assert.Equal(t, exitError, run(context.Background(), []string{"missing.prob"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "missing.prob")

	stderr.Reset()
	assert.Equal(t, exitError, run(context.Background(), []string{"-log-level", "loud", fourStops}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unknown log level")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitError, run(ctx, []string{"-out", t.TempDir(), fourStops}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "context canceled")
}
