package searcher

import (
	"context"
	"testing"

	"pursuit/game"

	"github.com/stretchr/testify/require"
)

/*
- base cases: depth 0 or only Stop -> entry scores, no action
- recursion: each agent maximizes its own component, ties broken by the seeded source
- returned scores are the entry state's, whatever the lookahead found
- every call is a visited node; cancellation aborts the search
*/

func newState(t *testing.T, text string, pursuers int) *game.GameState {
	t.Helper()
	layout, err := game.ParseLayout("test", text)
	require.NoError(t, err)
	s, err := game.NewGameState(layout, pursuers, game.NewRules(game.DefaultSettings(), 0))
	require.NoError(t, err)
	return s
}

const (
	// food one step west of the primary
	snackLayout = "%%%%%\n%.P %\n%R  %\n%%%%%"
	// nothing to eat within reach: every move of the primary is worth the same
	emptyLayout = "%%%%%\n% P %\n%R .%\n%%%%%"
)

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("depth 0 returns the entry scores and no action", func(t *testing.T) {
		s := newState(t, snackLayout, 0)
		m := NewMultimax(WithSeed(1))

		scores, action, err := m.Search(ctx, s, game.PrimaryIndex, 0)

		require.NoError(t, err)
		require.Equal(t, s.Scores(), scores)
		require.Equal(t, game.None, action)
		require.Equal(t, int64(1), m.Nodes(), "the base case still counts as a visited node")
	})

	t.Run("agents with only Stop have no action", func(t *testing.T) {
		s := newState(t, "%%%%\n%P%%\n%%R%\n%%%%", 0)
		m := NewMultimax(WithSeed(1))

		scores, action, err := m.Search(ctx, s, game.PrimaryIndex, 2)

		require.NoError(t, err)
		require.Equal(t, s.Scores(), scores)
		require.Equal(t, game.None, action)
	})

	t.Run("agent picks the action best for its own score", func(t *testing.T) {
		s := newState(t, snackLayout, 0)
		m := NewMultimax(WithSeed(1))

		scores, action, err := m.Search(ctx, s, game.PrimaryIndex, 1)

		require.NoError(t, err)
		require.Equal(t, game.West, action, "eating should beat walking")
		require.Equal(t, []float64{0, 0}, scores, "scores should be the entry state's, not the child's")
		require.Equal(t, int64(4), m.Nodes(), "root plus one node per non-Stop action")
	})

	t.Run("rival maximizes its own component", func(t *testing.T) {
		s := newState(t, "%%%%%\n%R.P%\n% . %\n%%%%%", 0)
		m := NewMultimax(WithSeed(3))

		_, action, err := m.Search(ctx, s, game.RivalIndex, 1)

		require.NoError(t, err)
		require.Equal(t, game.East, action, "rival should also eat when it can")
	})

	t.Run("pursuer goes for the capture", func(t *testing.T) {
		s := newState(t, "%%%%%%\n%P   %\n%R 1 %\n%%%%%%", 1)
		s, err := s.GenerateSuccessor(game.RivalIndex, game.East)
		require.NoError(t, err)
		m := NewMultimax(WithSeed(5))

		_, action, err := m.Search(ctx, s, game.FirstPursuer, 1)

		require.NoError(t, err)
		require.Equal(t, game.West, action)
	})

	t.Run("ties are broken by the seeded source", func(t *testing.T) {
		s := newState(t, emptyLayout, 0)
		seen := map[game.Direction]bool{}
		for seed := uint64(0); seed < 32; seed++ {
			_, first, err := NewMultimax(WithSeed(seed)).Search(ctx, s, game.PrimaryIndex, 1)
			require.NoError(t, err)
			_, second, err := NewMultimax(WithSeed(seed)).Search(ctx, s, game.PrimaryIndex, 1)
			require.NoError(t, err)

			require.Equal(t, first, second, "seed %d should pick the same action", seed)
			require.NotEqual(t, game.Stop, first)
			seen[first] = true
		}
		require.Len(t, seen, 3, "every tied action should be chosen for some seed")
	})

	t.Run("deeper searches keep the node count growing", func(t *testing.T) {
		s := newState(t, emptyLayout, 0)
		m := NewMultimax(WithSeed(1))

		_, _, err := m.Search(ctx, s, game.PrimaryIndex, 1)
		require.NoError(t, err)
		shallow := m.Nodes()
		_, _, err = m.Search(ctx, s, game.PrimaryIndex, 3)
		require.NoError(t, err)

		require.Greater(t, m.Nodes(), 2*shallow, "the counter should accumulate across searches")
	})

	t.Run("cancelled searches fail", func(t *testing.T) {
		s := newState(t, emptyLayout, 0)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := NewMultimax().Search(cancelled, s, game.PrimaryIndex, 3)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestChooseAction(t *testing.T) {
	ctx := context.Background()

	t.Run("metrics describe the search", func(t *testing.T) {
		s := newState(t, snackLayout, 0)
		m := NewMultimax(WithSeed(1), WithMetrics())

		action, metric, err := m.ChooseAction(ctx, s, game.PrimaryIndex, 1)

		require.NoError(t, err)
		require.Equal(t, game.West, action)
		require.Equal(t, 1, metric.Depth)
		require.Equal(t, 4, metric.Nodes)
	})

	t.Run("any non-negative depth is searched", func(t *testing.T) {
		s := newState(t, snackLayout, 0)

		action, _, err := NewMultimax(WithSeed(1)).ChooseAction(ctx, s, game.PrimaryIndex, MaxDepth+1)
		require.NoError(t, err)
		require.Equal(t, game.West, action)

		_, _, err = NewMultimax().ChooseAction(ctx, s, game.PrimaryIndex, -1)
		require.Error(t, err)
	})

	t.Run("observers see every node", func(t *testing.T) {
		s := newState(t, emptyLayout, 0)
		explored := NewExploredSet()
		visits := 0
		m := NewMultimax(WithSeed(1), WithObserver(Observers{
			explored,
			ObserverFunc(func(*game.GameState, int, int) { visits++ }),
		}))

		_, _, err := m.ChooseAction(ctx, s, game.PrimaryIndex, 2)

		require.NoError(t, err)
		require.Equal(t, int64(visits), m.Nodes())
		require.True(t, explored.Contains(s.Hash()), "the root should be explored")
		require.LessOrEqual(t, explored.Len(), visits)

		explored.Reset()
		require.Zero(t, explored.Len())
	})
}
