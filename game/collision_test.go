package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/*
- forager walks into reach of a pursuer -> caught, penalty moves to that pursuer
- pursuer reaches both foragers -> exactly one caught, fixed by the rules seed
- capture in the half-move that ate the last food -> no penalty, no death
*/

func TestCheckDeath(t *testing.T) {
	t.Run("primary moving within half a cell of a pursuer is caught", func(t *testing.T) {
		settings := DefaultSettings()
		settings.PursuerSpeed = 0.5
		s := newTestState(t, pursuitLayout, 1, settings, 0)

		var err error
		for range 3 {
			s, err = s.GenerateSuccessor(FirstPursuer, West)
			require.NoError(t, err)
		}
		pursuer, err := s.PursuerPosition(FirstPursuer)
		require.NoError(t, err)
		require.Equal(t, Position{X: 3.5, Y: 2}, pursuer)

		s, err = s.GenerateSuccessor(PrimaryIndex, East)
		require.NoError(t, err)
		require.False(t, s.IsTerminal(), "a pursuer 1.5 away should not catch")

		s, err = s.GenerateSuccessor(PrimaryIndex, East)
		require.NoError(t, err)

		require.True(t, s.PrimaryDied())
		require.False(t, s.RivalDied())
		require.True(t, s.IsTerminal())
		require.True(t, s.PursuersWin())
		require.Equal(t, []float64{-202, 0, 200}, s.Scores(), "200 points should move from the primary to the pursuer")
	})

	t.Run("pursuer is credited with the capture", func(t *testing.T) {
		s := newTestState(t, "%%%%%%\n%P  1%\n%R  2%\n%%%%%%", 2, DefaultSettings(), 0)

		s, err := s.GenerateSuccessor(3, West)
		require.NoError(t, err)
		s, err = s.GenerateSuccessor(3, West)
		require.NoError(t, err)
		s, err = s.GenerateSuccessor(3, West)
		require.NoError(t, err)

		require.True(t, s.RivalDied())
		require.Equal(t, []float64{0, -200, 0, 200}, s.Scores(), "the pursuer that moved should score")
	})

	t.Run("foragers only check the first pursuer", func(t *testing.T) {
		s := newTestState(t, "%%%%%%\n%P 1 %\n%R 2 %\n%%%%%%", 2, DefaultSettings(), 0)

		s, err := s.GenerateSuccessor(RivalIndex, East)
		require.NoError(t, err)
		s, err = s.GenerateSuccessor(RivalIndex, East)
		require.NoError(t, err)

		require.False(t, s.RivalDied(), "walking into a later pursuer should not be checked on the forager's move")
	})

	t.Run("no pursuers means no captures", func(t *testing.T) {
		s := corridor(t)

		s, err := s.GenerateSuccessor(RivalIndex, North)
		require.NoError(t, err)

		require.False(t, s.IsTerminal())
	})

	t.Run("no capture once the pursuers have lost", func(t *testing.T) {
		s := newTestState(t, "%%%%%\n%P.G%\n%R  %\n%%%%%", 1, DefaultSettings(), 0)
		s.agents[FirstPursuer].Configuration.Position = Position{X: 2.5, Y: 2}

		s, err := s.GenerateSuccessor(PrimaryIndex, East)
		require.NoError(t, err)

		require.True(t, s.PursuersLose())
		require.False(t, s.PrimaryDied(), "the game was already lost by the pursuers")
		require.Equal(t, []float64{19, -10, -10}, s.Scores(), "only the meal and time penalty should count")
	})
}

func TestDoubleCapture(t *testing.T) {
	const text = "%%%%%\n%   %\n%PR %\n%  .%\n%%%%%"
	play := func(seed uint64) *GameState {
		s := newTestState(t, text, 0, DefaultSettings(), seed)
		s.agents = append(s.agents, AgentState{
			Role:          Pursuer,
			Configuration: Configuration{Position: Position{X: 1.5, Y: 1}, Direction: North},
		})
		s.scores = append(s.scores, 0)
		s.delta = append(s.delta, 0)

		next, err := s.GenerateSuccessor(FirstPursuer, North)
		require.NoError(t, err)
		return next
	}

	t.Run("exactly one forager is caught", func(t *testing.T) {
		s := play(7)

		require.True(t, s.PrimaryDied() != s.RivalDied(), "one and only one forager should be caught")
		require.Equal(t, 200.0, s.Scores()[FirstPursuer])
		require.Equal(t, -200.0, s.Scores()[PrimaryIndex]+s.Scores()[RivalIndex])
	})

	t.Run("the same seed catches the same forager", func(t *testing.T) {
		for seed := uint64(0); seed < 16; seed++ {
			require.Equal(t, play(seed).PrimaryDied(), play(seed).PrimaryDied(), "seed %d should replay identically", seed)
		}
	})

	t.Run("either forager can be caught", func(t *testing.T) {
		outcomes := map[bool]int{}
		for seed := uint64(0); seed < 64; seed++ {
			outcomes[play(seed).PrimaryDied()]++
		}
		require.Len(t, outcomes, 2, "both outcomes should occur across seeds")
	})
}
