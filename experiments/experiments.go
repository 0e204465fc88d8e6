package experiments

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"pursuit/engine"
	"pursuit/experiments/metrics"
	"pursuit/game"
	"pursuit/meta"
	"pursuit/replay"
	"pursuit/searcher/agent"
)

// Summary aggregates a run of games from the primary's point of view.
type Summary struct {
	Games        int
	AverageScore float64
	Wins         int
	WinRate      float64
	Record       []string // "Win" or "Loss" per game
	Results      []engine.Result
	Replays      []*replay.Record
}

// ResolveLayout returns the built-in layout called name, or loads name as a file.
func ResolveLayout(name string) (*game.Layout, error) {
	if layout, err := game.BuiltinLayout(name); err == nil {
		return layout, nil
	}
	return game.LoadLayout(name)
}

// RunGames plays cfg.Games games, game i with rules seed cfg.Seed+i.
func RunGames(ctx context.Context, cfg meta.Config) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	layout, err := ResolveLayout(cfg.Layout)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Games: cfg.Games}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	total := 0.0

	log.Info().Msgf("starting %d games on %s with %d pursuers...", cfg.Games, layout.Name(), cfg.Pursuers)

	for i := 0; i < cfg.Games; i++ {
		seed := cfg.Seed + uint64(i)
		result, record, err := runGame(ctx, cfg, layout, seed)
		if err != nil {
			return summary, fmt.Errorf("game %d: %w", i+1, err)
		}

		final := result.State
		total += final.Scores()[game.PrimaryIndex]
		outcome := "Loss"
		if final.PrimaryWins() {
			outcome = "Win"
			summary.Wins++
		}
		summary.Record = append(summary.Record, outcome)
		summary.Results = append(summary.Results, result)
		summary.Replays = append(summary.Replays, record)

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i,
			GameID:     record.GameID,
			GameMetric: result.GameMetric,
		})
		for _, mm := range result.MoveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i,
				MoveMetric: mm,
			})
		}

		log.Info().Msgf("completed game %d of %d: %s, scores %v", i+1, cfg.Games, outcome, final.Scores())
	}

	summary.AverageScore = total / float64(cfg.Games)
	summary.WinRate = float64(summary.Wins) / float64(cfg.Games)
	log.Info().Msgf("average score: %g", summary.AverageScore)
	log.Info().Msgf("win rate: %d/%d (%.2f)", summary.Wins, cfg.Games, summary.WinRate)
	log.Info().Msgf("record: %v", summary.Record)

	if cfg.RecordDir != "" {
		path := filepath.Join(cfg.RecordDir, fmt.Sprintf("%s-%d.parquet", layout.Name(), cfg.Seed))
		if err := replay.WriteArchive(path, summary.Replays); err != nil {
			return summary, fmt.Errorf("failed to store replays: %w", err)
		}
		log.Info().Msgf("stored replays in %s", path)
	}

	if cfg.MetricsDir != "" {
		writer, err := metrics.NewWriter(cfg.MetricsDir)
		if err != nil {
			return summary, fmt.Errorf("failed to create metrics writer: %w", err)
		}
		if err := writer.WriteGameRecords(gameRecords); err != nil {
			return summary, fmt.Errorf("failed to write game records: %w", err)
		}
		log.Info().Msg("stored game records")
		if err := writer.WriteMoveRecords(moveRecords); err != nil {
			return summary, fmt.Errorf("failed to write move records: %w", err)
		}
		log.Info().Msg("stored move records")
	}

	return summary, nil
}

// runGame plays a single game and records it.
func runGame(ctx context.Context, cfg meta.Config, layout *game.Layout, seed uint64) (engine.Result, *replay.Record, error) {
	rules := game.NewRules(cfg.Rules, seed)
	state, err := game.NewGameState(layout, cfg.Pursuers, rules)
	if err != nil {
		return engine.Result{}, nil, err
	}

	agents := make([]agent.Agent, state.NumAgents())
	for i := range agents {
		agents[i], err = createAgent(cfg, state, i, seed)
		if err != nil {
			return engine.Result{}, nil, err
		}
	}

	e, err := engine.LocalEngine(state, agents, engine.WithTimeout(cfg.Timeout), engine.WithMaxMoves(cfg.MaxMoves))
	if err != nil {
		return engine.Result{}, nil, err
	}
	result, err := e.Run(ctx)
	if err != nil {
		return engine.Result{}, nil, err
	}

	record := replay.NewRecord(uuid.NewString(), layout, cfg.Pursuers, rules)
	for _, m := range result.Moves {
		record.Add(m)
	}
	return result, record, nil
}

func createAgent(cfg meta.Config, state *game.GameState, index int, seed uint64) (agent.Agent, error) {
	searchSeed := seed*uint64(state.NumAgents()) + uint64(index)
	if index == game.PrimaryIndex && cfg.RemoteURL != "" {
		return engine.NewRemoteAgent(cfg.RemoteURL, index, cfg.Depth, searchSeed, state), nil
	}

	kind := cfg.Agents.Pursuer
	switch game.RoleOf(index) {
	case game.Primary:
		kind = cfg.Agents.Primary
	case game.Rival:
		kind = cfg.Agents.Rival
	}
	return agent.New(kind, index, cfg.Depth, cfg.Agents.Evaluator, rand.New(rand.NewSource(searchSeed)))
}
