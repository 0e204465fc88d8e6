package agent

import (
	"context"
	"fmt"
	"math"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/searcher"
	"pursuit/utils"

	"golang.org/x/exp/rand"
)

type Agent interface {
	// Index is the agent index this policy plays.
	Index() int
	// GetAction returns the action to play in state and performance metrics (if collected) of the decision.
	GetAction(ctx context.Context, state *game.GameState) (game.Direction, metrics.SearchMetric, error)
}

const (
	KindMultimax = "multimax"
	KindGreedy   = "greedy"
	KindRandom   = "random"
)

// New builds the policy named by kind for agent index. evaluator names an entry
// of game.Evaluators used by the greedy policy; empty means "score".
func New(kind string, index, depth int, evaluator string, rng *rand.Rand) (Agent, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	if evaluator == "" {
		evaluator = "score"
	}
	evaluate, ok := game.Evaluators[evaluator]
	if !ok {
		return nil, fmt.Errorf("unknown evaluator %q", evaluator)
	}
	switch kind {
	case KindMultimax:
		if depth < 1 || depth > searcher.MaxDepth {
			return nil, fmt.Errorf("multimax depth %d outside [1, %d]", depth, searcher.MaxDepth)
		}
		return NewMultimaxAgent(index, depth, searcher.NewMultimax(searcher.WithRand(rng), searcher.WithMetrics())), nil
	case KindGreedy:
		return NewGreedyAgent(index, evaluate, rng), nil
	case KindRandom:
		return NewRandomAgent(index, rng), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", kind)
	}
}

type multimaxAgent struct {
	index  int
	depth  int
	search *searcher.Multimax
}

func NewMultimaxAgent(index, depth int, search *searcher.Multimax) Agent {
	if depth < 1 {
		panic("multimax agent needs a positive depth")
	}
	return &multimaxAgent{index: index, depth: depth, search: search}
}

func (a *multimaxAgent) Index() int { return a.index }

func (a *multimaxAgent) GetAction(ctx context.Context, state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	action, metric, err := a.search.ChooseAction(ctx, state, a.index, a.depth)
	if err != nil {
		return game.None, metric, err
	}
	if action == game.None {
		// Only Stop is left, or nothing at all.
		action, err = Fallback(state, a.index)
	}
	return action, metric, err
}

type greedyAgent struct {
	index    int
	evaluate game.Evaluator
	rng      *rand.Rand
}

// NewGreedyAgent looks one half-move ahead and takes the action whose successor
// evaluates best, never stopping unless it has to.
func NewGreedyAgent(index int, evaluate game.Evaluator, rng *rand.Rand) Agent {
	if evaluate == nil {
		evaluate = game.EvaluateScore
	}
	return &greedyAgent{index: index, evaluate: evaluate, rng: rng}
}

func (a *greedyAgent) Index() int { return a.index }

func (a *greedyAgent) GetAction(ctx context.Context, state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	metric := metrics.SearchMetric{Agent: a.index, Depth: 1}
	actions, err := state.LegalActions(a.index)
	if err != nil {
		return game.None, metric, err
	}
	actions = utils.Without(actions, game.Stop)
	if len(actions) == 0 {
		action, err := Fallback(state, a.index)
		return action, metric, err
	}

	best := math.Inf(-1)
	var candidates []game.Direction
	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			return game.None, metric, err
		}
		child, err := state.GenerateSuccessor(a.index, action)
		if err != nil {
			return game.None, metric, err
		}
		metric.Nodes++
		switch value := a.evaluate(child, a.index); {
		case value > best:
			best = value
			candidates = append(candidates[:0], action)
		case value == best:
			candidates = append(candidates, action)
		}
	}
	return candidates[a.rng.Intn(len(candidates))], metric, nil
}

type randomAgent struct {
	index int
	rng   *rand.Rand
}

func NewRandomAgent(index int, rng *rand.Rand) Agent {
	return &randomAgent{index: index, rng: rng}
}

func (a *randomAgent) Index() int { return a.index }

func (a *randomAgent) GetAction(ctx context.Context, state *game.GameState) (game.Direction, metrics.SearchMetric, error) {
	metric := metrics.SearchMetric{Agent: a.index}
	actions, err := state.LegalActions(a.index)
	if err != nil {
		return game.None, metric, err
	}
	if len(actions) == 0 {
		return game.None, metric, fmt.Errorf("agent %d: no legal actions", a.index)
	}
	return actions[a.rng.Intn(len(actions))], metric, nil
}

// Fallback is the action played when a policy has no opinion: Stop when legal,
// otherwise the first legal action.
func Fallback(state *game.GameState, index int) (game.Direction, error) {
	actions, err := state.LegalActions(index)
	if err != nil {
		return game.None, err
	}
	if len(actions) == 0 {
		return game.None, fmt.Errorf("agent %d: no legal actions", index)
	}
	if utils.Contains(actions, game.Stop) {
		return game.Stop, nil
	}
	return actions[0], nil
}
