package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	t.Run("first text row is the top of the board", func(t *testing.T) {
		l, err := ParseLayout("test", "%%%%\n%P.%\n%Ro%\n%%%%\n")
		require.NoError(t, err)

		require.Equal(t, 4, l.Width())
		require.Equal(t, 4, l.Height())
		require.Equal(t, Point{X: 1, Y: 2}, l.primary)
		require.Equal(t, Point{X: 1, Y: 1}, l.rival)
		require.Equal(t, []Point{{X: 2, Y: 1}}, l.capsules)
		require.True(t, l.food.Get(2, 2), "food should be on the upper row")
		require.Equal(t, 1, l.food.Count())
		require.True(t, l.IsWall(0, 0))
		require.True(t, l.IsWall(-1, 2), "cells outside the board should be walls")
		require.False(t, l.IsWall(2, 2))
	})

	t.Run("pursuers are ordered by their digit", func(t *testing.T) {
		l, err := ParseLayout("test", "%%%%%%\n%2P R%\n% 1 G%\n%%%%%%")
		require.NoError(t, err)

		require.Equal(t, 3, l.NumPursuers())
		require.Equal(t, []Point{{X: 2, Y: 1}, {X: 4, Y: 1}, {X: 1, Y: 2}}, l.pursuers,
			"pursuer 1 and G share the first rank and are ordered by column, then pursuer 2")
	})

	t.Run("windows line endings are accepted", func(t *testing.T) {
		l, err := ParseLayout("test", "%%%\r\n%P%\r\n%R%\r\n%%%")
		require.NoError(t, err)
		require.Equal(t, "%%%\n%P%\n%R%\n%%%", l.Text())
	})

	t.Run("malformed layouts are rejected", func(t *testing.T) {
		cases := map[string]string{
			"empty":         "",
			"ragged rows":   "%%%%\n%PR\n%%%%",
			"unknown glyph": "%%%%\n%PRx\n%%%%",
			"no rival":      "%%%%\n%P.%\n%%%%",
			"two primaries": "%%%%%\n%PPR%\n%%%%%",
		}
		for name, text := range cases {
			_, err := ParseLayout(name, text)
			require.ErrorIs(t, err, ErrInvalidLayout, "%s layout should be invalid", name)
		}
	})
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.lay")
	require.NoError(t, os.WriteFile(path, []byte("%%%\n%P%\n%R%\n%%%\n"), 0o644))

	l, err := LoadLayout(path)

	require.NoError(t, err)
	require.Equal(t, "tiny", l.Name(), "layout should be named after the file")

	_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.lay"))
	require.Error(t, err)
}

func TestBuiltinLayouts(t *testing.T) {
	for _, name := range BuiltinLayoutNames() {
		t.Run(name, func(t *testing.T) {
			l, err := BuiltinLayout(name)
			require.NoError(t, err, "built-in layout should parse")
			require.Equal(t, name, l.Name())
			require.Positive(t, l.food.Count(), "built-in layout should hold food")
		})
	}

	_, err := BuiltinLayout("nowhere")
	require.Error(t, err)
}

func TestMazeDistance(t *testing.T) {
	l, err := ParseLayout("test", "%%%%%\n%P%.%\n%R  %\n%%%%%")
	require.NoError(t, err)

	require.Equal(t, 0, l.MazeDistance(Point{X: 1, Y: 2}, Point{X: 1, Y: 2}))
	require.Equal(t, 4, l.MazeDistance(Point{X: 1, Y: 2}, Point{X: 3, Y: 2}), "path should go around the wall")
	require.Equal(t, -1, l.MazeDistance(Point{X: 1, Y: 2}, Point{X: 2, Y: 2}), "walls are unreachable")
}
