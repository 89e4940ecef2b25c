// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config holds the sender's runtime configuration: the one
// flag the specification exposes (StrictEventOrdering), plus the
// attempt deadline consumed by the watchdog package, and the file/env
// loading glue used by the demo CLI to populate them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix used for environment variable overrides.
const EnvPrefix = "SENDER_"

// Config holds the sender's runtime configuration.
type Config struct {
	// StrictEventOrdering controls whether the Complete event fires
	// before (true) or after (false, the default) the channel is
	// released back to its pool. False maximizes throughput by letting
	// the channel serve its next request immediately; true trades that
	// throughput for a guarantee useful in tests and strict clients
	// that no further work starts on the channel before Complete fires.
	StrictEventOrdering bool

	// AttemptDeadline bounds how long a single exchange may run before
	// the watchdog aborts it with context.DeadlineExceeded. Zero means
	// unbounded. This is an attempt deadline, not a retry timeout: the
	// sender never retries (see Non-goals).
	AttemptDeadline time.Duration
}

// Default returns the zero-value-safe default configuration:
// StrictEventOrdering false, AttemptDeadline unbounded.
func Default() Config {
	return Config{
		StrictEventOrdering: false,
		AttemptDeadline:     0,
	}
}

// fileConfig mirrors Config but uses a duration string to stay
// TOML-friendly.
type fileConfig struct {
	StrictEventOrdering *bool  `toml:"strict_event_ordering"`
	AttemptDeadline     string `toml:"attempt_deadline"`
}

// Load reads a TOML configuration file at path and applies it on top
// of Default(), then applies any SENDER_-prefixed environment
// variable overrides.
//
// A missing file is not an error: Load returns the environment-
// overridden defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else {
			var fc fileConfig
			if err := toml.Unmarshal(b, &fc); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
			if err := applyFileConfig(&cfg, fc); err != nil {
				return cfg, fmt.Errorf("config: %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	fc := fileConfig{
		StrictEventOrdering: &cfg.StrictEventOrdering,
		AttemptDeadline:     cfg.AttemptDeadline.String(),
	}
	b, err := toml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

func applyFileConfig(cfg *Config, fc fileConfig) error {
	if fc.StrictEventOrdering != nil {
		cfg.StrictEventOrdering = *fc.StrictEventOrdering
	}
	if fc.AttemptDeadline != "" {
		d, err := time.ParseDuration(fc.AttemptDeadline)
		if err != nil {
			return fmt.Errorf("attempt_deadline: %w", err)
		}
		cfg.AttemptDeadline = d
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvPrefix + "STRICT_EVENT_ORDERING"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sSTRICT_EVENT_ORDERING: %w", EnvPrefix, err)
		}
		cfg.StrictEventOrdering = b
	}
	if v := os.Getenv(EnvPrefix + "ATTEMPT_DEADLINE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sATTEMPT_DEADLINE: %w", EnvPrefix, err)
		}
		cfg.AttemptDeadline = d
	}
	return nil
}
