// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.StrictEventOrdering)
	assert.Zero(t, cfg.AttemptDeadline)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
strict_event_ordering = true
attempt_deadline = "5s"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.StrictEventOrdering)
	assert.Equal(t, 5*time.Second, cfg.AttemptDeadline)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
strict_event_ordering = true
attempt_deadline = "5s"
`), 0o644))

	t.Setenv("SENDER_STRICT_EVENT_ORDERING", "false")
	t.Setenv("SENDER_ATTEMPT_DEADLINE", "1m")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.StrictEventOrdering)
	assert.Equal(t, time.Minute, cfg.AttemptDeadline)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Config{StrictEventOrdering: true, AttemptDeadline: 30 * time.Second}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
