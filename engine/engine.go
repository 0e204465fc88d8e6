package engine

import (
	"pursuit/experiments/metrics"
	"pursuit/game"
)

const MaxMoves = 10000

// Updater is implemented by agents that keep their own copy of the game and
// need to hear about every half-move played, by any agent.
type Updater interface {
	Update(move game.Move)
}

// Result is the outcome of a game run by the engine.
type Result struct {
	State       *game.GameState
	Moves       []game.Move
	GameMetric  metrics.GameMetric
	MoveMetrics []metrics.MoveMetric
}
