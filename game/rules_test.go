package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// pursuer starts at (5,2) in a dead end facing the open corridor to the west.
const pursuitLayout = "%%%%%%%\n%P   G%\n%R...%%\n%%%%%%%"

func TestForagerLegalActions(t *testing.T) {
	s := newTestState(t, pursuitLayout, 1, DefaultSettings(), 0)

	actions, err := s.LegalActions(PrimaryIndex)

	require.NoError(t, err)
	require.Equal(t, []Direction{South, East, Stop}, actions, "foragers may stop and may not enter walls")
}

func TestPursuerLegalActions(t *testing.T) {
	t.Run("pursuers never stop", func(t *testing.T) {
		s := newTestState(t, pursuitLayout, 1, DefaultSettings(), 0)

		actions, err := s.LegalActions(FirstPursuer)

		require.NoError(t, err)
		require.NotContains(t, actions, Stop)
		require.Equal(t, []Direction{West}, actions)
	})

	t.Run("pursuers do not reverse when they have a choice", func(t *testing.T) {
		s := newTestState(t, pursuitLayout, 1, DefaultSettings(), 0)
		s, err := s.GenerateSuccessor(FirstPursuer, West)
		require.NoError(t, err)

		actions, err := s.LegalActions(FirstPursuer)

		require.NoError(t, err)
		require.Equal(t, []Direction{South, West}, actions, "East is the reverse of the current heading")
	})

	t.Run("pursuers reverse at a dead end", func(t *testing.T) {
		s := newTestState(t, pursuitLayout, 1, DefaultSettings(), 0)
		s.agents[FirstPursuer].Configuration.Direction = East

		actions, err := s.LegalActions(FirstPursuer)

		require.NoError(t, err)
		require.Equal(t, []Direction{West}, actions, "the reverse should be allowed when it is the only way out")
	})
}

func TestPursuerMovement(t *testing.T) {
	t.Run("scared pursuers move at half speed", func(t *testing.T) {
		s := newTestState(t, pursuitLayout, 1, DefaultSettings(), 0)
		s.agents[FirstPursuer].ScaredTimer = 2

		s, err := s.GenerateSuccessor(FirstPursuer, West)
		require.NoError(t, err)

		p, err := s.PursuerState(FirstPursuer)
		require.NoError(t, err)
		require.Equal(t, Position{X: 4.5, Y: 2}, p.Position())
		require.Equal(t, 1, p.ScaredTimer)

		actions, err := s.LegalActions(FirstPursuer)
		require.NoError(t, err)
		require.Equal(t, []Direction{West}, actions, "an agent between cells may only keep going")

		s, err = s.GenerateSuccessor(FirstPursuer, West)
		require.NoError(t, err)

		p, err = s.PursuerState(FirstPursuer)
		require.NoError(t, err)
		require.Equal(t, Position{X: 4, Y: 2}, p.Position(), "pursuer should snap to a cell when it stops being scared")
		require.Equal(t, 0, p.ScaredTimer)
	})

	t.Run("slow foragers eat on arrival at the half cell", func(t *testing.T) {
		settings := DefaultSettings()
		settings.ForagerSpeed = 0.5
		s := newTestState(t, "%%%%%\n%P.R%\n%%%%%", 0, settings, 0)

		s, err := s.GenerateSuccessor(PrimaryIndex, East)
		require.NoError(t, err)
		require.Equal(t, Position{X: 1.5, Y: 1}, s.PrimaryPosition())
		require.Equal(t, 0, s.NumFood(), "food within half a cell should be eaten")
		require.Equal(t, 19.0, s.Scores()[PrimaryIndex])
	})
}
