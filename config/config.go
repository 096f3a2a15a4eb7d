// SPDX-License-Identifier: MIT

// Package config holds the run-time settings of the schoolbus command:
// defaults, a YAML file, SCHOOLBUS_* environment variables (optionally from a
// .env file) and, last, command-line flags set by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/schoolbus/solver"
	"github.com/katalvlaran/schoolbus/state"
	"github.com/katalvlaran/schoolbus/transit"
)

// EnvPrefix prefixes every environment variable the package reads.
const EnvPrefix = "SCHOOLBUS_"

// ErrInvalidConfig indicates a setting outside its domain.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full set of run-time settings.
type Config struct {
	Heuristic        string        `yaml:"heuristic"`
	MaxExpansions    uint64        `yaml:"max-expansions"`
	Timeout          time.Duration `yaml:"timeout"`
	LineageHash      bool          `yaml:"lineage-hash"`
	FeasibilityCheck bool          `yaml:"feasibility-check"`
	LogLevel         string        `yaml:"log-level"`
	OutputDir        string        `yaml:"output-dir"`
	ProgressEvery    uint64        `yaml:"progress-every"`
	RowCacheSize     int           `yaml:"row-cache-size"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Heuristic:        state.HeuristicNone.String(),
		FeasibilityCheck: true,
		LogLevel:         "info",
		ProgressEvery:    solver.DefaultProgressEvery,
		RowCacheSize:     transit.DefaultRowCacheSize,
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path
// returns the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Environ collects SCHOOLBUS_* variables from the given .env files (missing
// files are skipped) and then from the process environment, which wins.
func Environ(files ...string) (map[string]string, error) {
	env := make(map[string]string)
	for _, f := range files {
		vars, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: read %s: %w", f, err)
		}
		for k, v := range vars {
			if strings.HasPrefix(k, EnvPrefix) {
				env[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overrides c with the recognised entries of env, then validates.
//
// Recognised keys: SCHOOLBUS_HEURISTIC, SCHOOLBUS_MAX_EXPANSIONS,
// SCHOOLBUS_TIMEOUT, SCHOOLBUS_LINEAGE_HASH, SCHOOLBUS_FEASIBILITY_CHECK,
// SCHOOLBUS_LOG_LEVEL, SCHOOLBUS_OUTPUT_DIR, SCHOOLBUS_PROGRESS_EVERY,
// SCHOOLBUS_ROW_CACHE_SIZE.
func (c *Config) ApplyEnv(env map[string]string) error {
	var err error
	for key, raw := range env {
		switch strings.TrimPrefix(key, EnvPrefix) {
		case "HEURISTIC":
			c.Heuristic = raw
		case "MAX_EXPANSIONS":
			c.MaxExpansions, err = strconv.ParseUint(raw, 10, 64)
		case "TIMEOUT":
			c.Timeout, err = time.ParseDuration(raw)
		case "LINEAGE_HASH":
			c.LineageHash, err = strconv.ParseBool(raw)
		case "FEASIBILITY_CHECK":
			c.FeasibilityCheck, err = strconv.ParseBool(raw)
		case "LOG_LEVEL":
			c.LogLevel = raw
		case "OUTPUT_DIR":
			c.OutputDir = raw
		case "PROGRESS_EVERY":
			c.ProgressEvery, err = strconv.ParseUint(raw, 10, 64)
		case "ROW_CACHE_SIZE":
			c.RowCacheSize, err = strconv.Atoi(raw)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, raw, err)
		}
	}
	return c.Validate()
}

// Validate rejects settings no run can use.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalidConfig, c.Timeout)
	}
	if c.RowCacheSize < 0 {
		return fmt.Errorf("%w: negative row-cache-size %d", ErrInvalidConfig, c.RowCacheSize)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// HashMode maps LineageHash to a state.HashMode.
func (c Config) HashMode() state.HashMode {
	if c.LineageHash {
		return state.HashLineage
	}
	return state.HashWorld
}

// SolverOptions translates c for heuristic h into solver options.
func (c Config) SolverOptions(h state.Heuristic, logger *slog.Logger) []solver.Option {
	opts := []solver.Option{
		solver.WithHeuristic(h),
		solver.WithHashMode(c.HashMode()),
		solver.WithMaxExpansions(c.MaxExpansions),
		solver.WithProgressEvery(c.ProgressEvery),
		solver.WithLogger(logger),
	}
	if !c.FeasibilityCheck {
		opts = append(opts, solver.WithoutFeasibilityCheck())
	}
	return opts
}

// TransitOptions translates RowCacheSize into graph options; zero disables the cache.
func (c Config) TransitOptions() []transit.Option {
	if c.RowCacheSize == 0 {
		return []transit.Option{transit.WithoutRowCache()}
	}
	return []transit.Option{transit.WithRowCache(c.RowCacheSize)}
}

// ParseLevel maps "debug", "info", "warn" or "error" to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
	}
}
