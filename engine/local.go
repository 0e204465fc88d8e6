package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/searcher/agent"
)

type Option func(e *Engine)

// WithTimeout bounds every decision. A decision that runs out of time plays the
// fallback action instead.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

func WithMaxMoves(moves int) Option {
	return func(e *Engine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// Engine plays agents against each other round-robin from agent 0.
type Engine struct {
	state    *game.GameState
	agents   []agent.Agent
	timeout  time.Duration
	maxMoves int
}

// LocalEngine prepares a game from state. agents[i] plays agent index i.
func LocalEngine(state *game.GameState, agents []agent.Agent, options ...Option) (*Engine, error) {
	if len(agents) != state.NumAgents() {
		return nil, fmt.Errorf("game has %d agents, got %d policies", state.NumAgents(), len(agents))
	}
	for i, a := range agents {
		if a == nil || a.Index() != i {
			return nil, fmt.Errorf("policy %d does not play agent %d", i, i)
		}
	}
	e := &Engine{ // Default values
		state:    state,
		agents:   agents,
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

func (e *Engine) State() *game.GameState { return e.state }

// Run plays until the game is over, the move cap is reached or no agent can move.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	var (
		moves       []game.Move
		moveMetrics []metrics.MoveMetric
		timeouts    int
		stuck       int
	)

	log.Info().Msgf("game on %s with %d agents started", e.state.Layout().Name(), e.state.NumAgents())

	index := game.PrimaryIndex
	for !e.state.IsTerminal() && len(moves) < e.maxMoves {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		actions, err := e.state.LegalActions(index)
		if err != nil {
			return Result{}, err
		}
		if len(actions) == 0 {
			stuck++
			if stuck >= e.state.NumAgents() {
				log.Warn().Msg("no agent can move, stopping")
				break
			}
			index = (index + 1) % e.state.NumAgents()
			continue
		}
		stuck = 0

		action, metric, err := e.decide(ctx, index)
		if err != nil {
			return Result{}, err
		}
		if metric.TimedOut {
			timeouts++
		}

		next, err := e.state.GenerateSuccessor(index, action)
		if err != nil {
			return Result{}, fmt.Errorf("agent %d: %w", index, err)
		}
		move := game.Move{Agent: index, Action: action}
		for _, a := range e.agents {
			if u, ok := a.(Updater); ok {
				u.Update(move)
			}
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         len(moves),
			Action:       action,
			SearchMetric: metric,
		})
		moves = append(moves, move)
		e.state = next
		index = (index + 1) % e.state.NumAgents()
	}

	end := time.Now()
	result := Result{
		State:       e.state,
		Moves:       moves,
		MoveMetrics: moveMetrics,
		GameMetric: metrics.GameMetric{
			Layout:       e.state.Layout().Name(),
			Pursuers:     e.state.NumAgents() - game.FirstPursuer,
			Seed:         e.state.Rules().Seed(),
			Scores:       e.state.Scores(),
			PrimaryDied:  e.state.PrimaryDied(),
			RivalDied:    e.state.RivalDied(),
			PursuersLose: e.state.PursuersLose(),
			PrimaryWins:  e.state.PrimaryWins(),
			StartTime:    start,
			EndTime:      end,
			Duration:     end.Sub(start),
			TotalMoves:   len(moves),
			Timeouts:     timeouts,
		},
	}
	log.Info().Msgf("game over after %d moves, scores %v", len(moves), result.GameMetric.Scores)
	return result, nil
}

// decide asks agent index for its action, falling back when the decision runs
// out of time or the agent has no opinion.
func (e *Engine) decide(ctx context.Context, index int) (game.Direction, metrics.SearchMetric, error) {
	decisionCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		decisionCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	action, metric, err := e.agents[index].GetAction(decisionCtx, e.state)
	metric.Agent = index
	switch {
	case err == nil && action != game.None:
		return action, metric, nil
	case err == nil:
		log.Debug().Msgf("agent %d has no preference, using fallback", index)
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		log.Warn().Msgf("agent %d timed out after %s, using fallback", index, e.timeout)
		metric.TimedOut = true
	default:
		return game.None, metric, fmt.Errorf("agent %d: %w", index, err)
	}

	action, err = agent.Fallback(e.state, index)
	return action, metric, err
}
