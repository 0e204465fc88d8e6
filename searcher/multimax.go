package searcher

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/utils"

	"golang.org/x/exp/rand"
)

type Option func(m *Multimax)

// Multimax searches a fixed number of half-moves ahead, letting every agent in
// turn pick the action that maximizes its own score component.
type Multimax struct {
	rng      *rand.Rand
	observer Observer
	metrics  metrics.Collector
	nodes    atomic.Int64
}

// WithSeed seeds the tie-break source.
func WithSeed(seed uint64) Option {
	return func(m *Multimax) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *Multimax) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(m *Multimax) {
		if observer != nil {
			m.observer = observer
		}
	}
}

func WithMetrics() Option {
	return func(m *Multimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMultimax(options ...Option) *Multimax {
	m := &Multimax{ // Default values
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		observer: nopObserver{},
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Nodes is the number of states visited by every search so far.
func (m *Multimax) Nodes() int64 {
	return m.nodes.Load()
}

// ChooseAction returns the action agent should take in state. It returns
// game.None when depth is 0 or the agent has nothing but Stop.
func (m *Multimax) ChooseAction(ctx context.Context, state *game.GameState, agent, depth int) (game.Direction, metrics.SearchMetric, error) {
	if depth < 0 {
		return game.None, metrics.SearchMetric{}, fmt.Errorf("negative search depth %d", depth)
	}
	m.metrics.Start(agent, depth)
	_, action, err := m.Search(ctx, state, agent, depth)
	metric := m.metrics.Complete()
	if err != nil {
		return game.None, metric, err
	}
	return action, metric, nil
}

// Search is the recursive multimax step. The returned scores are always those
// of state itself; only the action carries the lookahead.
func (m *Multimax) Search(ctx context.Context, state *game.GameState, agent, depth int) ([]float64, game.Direction, error) {
	if err := ctx.Err(); err != nil {
		return nil, game.None, err
	}
	m.nodes.Add(1)
	m.metrics.AddNode()
	m.observer.Visit(state, agent, depth)

	if depth == 0 {
		return state.Scores(), game.None, nil
	}
	actions, err := state.LegalActions(agent)
	if err != nil {
		return nil, game.None, err
	}
	actions = utils.Without(actions, game.Stop)
	if len(actions) == 0 {
		return state.Scores(), game.None, nil
	}

	next := (agent + 1) % state.NumAgents()
	best := math.Inf(-1)
	var candidates []game.Direction
	for _, action := range actions {
		child, err := state.GenerateSuccessor(agent, action)
		if err != nil {
			return nil, game.None, fmt.Errorf("search agent %d: %w", agent, err)
		}
		scores, _, err := m.Search(ctx, child, next, depth-1)
		if err != nil {
			return nil, game.None, err
		}
		switch value := scores[agent]; {
		case value > best:
			best = value
			candidates = append(candidates[:0], action)
		case value == best:
			candidates = append(candidates, action)
		}
	}

	return state.Scores(), candidates[m.rng.Intn(len(candidates))], nil
}
