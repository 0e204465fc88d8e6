package meta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("file values override the defaults", func(t *testing.T) {
		path := writeConfig(t, `
layout: smallArena
games: 3
timeout: 250ms
agents:
  rival: multimax
rules:
  capture_penalty: 500
  primary_consumption:
    self: 30
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, "smallArena", cfg.Layout)
		require.Equal(t, 3, cfg.Games)
		require.Equal(t, 250*time.Millisecond, cfg.Timeout)
		require.Equal(t, "multimax", cfg.Agents.Rival)
		require.Equal(t, "multimax", cfg.Agents.Primary, "unset fields should keep their default")
		require.Equal(t, "score", cfg.Agents.Evaluator)
		require.Equal(t, 500.0, cfg.Rules.CapturePenalty)
		require.Equal(t, 30.0, cfg.Rules.PrimaryConsumption.Self)
		require.Equal(t, -10.0, cfg.Rules.PrimaryConsumption.Other)
		require.Equal(t, 0.7, cfg.Rules.CollisionTolerance)
		require.Equal(t, DEPTH, cfg.Depth)
	})

	t.Run("empty files give the defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, ""))

		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "layuot: smallArena\n"))
		require.Error(t, err)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "depth: 0\n"))
		require.Error(t, err)

		_, err = Load(writeConfig(t, "rules:\n  pursuer_speed: 0\n"))
		require.Error(t, err)

		_, err = Load(writeConfig(t, "agents:\n  evaluator: hunch\n"))
		require.Error(t, err)
	})

	t.Run("missing files fail", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}
