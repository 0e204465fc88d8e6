package searcher

import (
	"context"

	"pursuit/experiments/metrics"
	"pursuit/game"
)

// MaxDepth bounds the depth policies and the agent server accept. Depth counts
// half-moves.
const MaxDepth = 8

type Searcher interface {
	ChooseAction(ctx context.Context, state *game.GameState, agent, depth int) (game.Direction, metrics.SearchMetric, error)
}
