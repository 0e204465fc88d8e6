package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pursuit/experiments"
	"pursuit/meta"
	"pursuit/replay"
	"pursuit/searcher/agent"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("pursuit failed")
		os.Exit(1)
	}
}

// invocation is a parsed command line.
type invocation struct {
	cfg        meta.Config
	logLevel   zerolog.Level
	serve      bool
	replayPath string
}

// parseArgs layers the flags given in args over the config file (if any) over
// the defaults.
func parseArgs(args []string) (invocation, error) {
	flags := flag.NewFlagSet("pursuit", flag.ContinueOnError)
	configPath := flags.String("config", "", "YAML config file layered over the defaults")
	logLevel := flags.String("log-level", "info", "zerolog level: trace, debug, info, warn, error")
	serve := flags.Bool("serve", false, "serve agent decisions over HTTP instead of playing")
	replayPath := flags.String("replay", "", "replay a parquet archive and print every game's final scores")

	defaults := meta.Default()
	layout := flags.String("layout", defaults.Layout, "built-in layout name or layout file")
	pursuers := flags.Int("pursuers", defaults.Pursuers, "number of pursuers")
	games := flags.Int("games", defaults.Games, "number of games to play")
	depth := flags.Int("depth", defaults.Depth, "multimax search depth")
	seed := flags.Uint64("seed", defaults.Seed, "seed of the first game")
	timeout := flags.Duration("timeout", defaults.Timeout, "per decision timeout, 0 for none")
	maxMoves := flags.Int("max-moves", defaults.MaxMoves, "move cap per game")
	primary := flags.String("primary", defaults.Agents.Primary, "primary policy")
	rival := flags.String("rival", defaults.Agents.Rival, "rival policy")
	pursuer := flags.String("pursuer", defaults.Agents.Pursuer, "pursuer policy")
	evaluator := flags.String("evaluator", defaults.Agents.Evaluator, "state evaluator of greedy policies: score, margin, proximity")
	recordDir := flags.String("record-dir", "", "directory for parquet replays")
	metricsDir := flags.String("metrics-dir", "", "directory for CSV metrics")
	remoteURL := flags.String("remote-url", "", "agent server playing the primary")
	addr := flags.String("addr", defaults.Addr, "listen address of the agent server")
	if err := flags.Parse(args); err != nil {
		return invocation{}, err
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		return invocation{}, fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}

	cfg := defaults
	if *configPath != "" {
		if cfg, err = meta.Load(*configPath); err != nil {
			return invocation{}, err
		}
	}

	// Flags given on the command line win over the config file.
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "layout":
			cfg.Layout = *layout
		case "pursuers":
			cfg.Pursuers = *pursuers
		case "games":
			cfg.Games = *games
		case "depth":
			cfg.Depth = *depth
		case "seed":
			cfg.Seed = *seed
		case "timeout":
			cfg.Timeout = *timeout
		case "max-moves":
			cfg.MaxMoves = *maxMoves
		case "primary":
			cfg.Agents.Primary = *primary
		case "rival":
			cfg.Agents.Rival = *rival
		case "pursuer":
			cfg.Agents.Pursuer = *pursuer
		case "evaluator":
			cfg.Agents.Evaluator = *evaluator
		case "record-dir":
			cfg.RecordDir = *recordDir
		case "metrics-dir":
			cfg.MetricsDir = *metricsDir
		case "remote-url":
			cfg.RemoteURL = *remoteURL
		case "addr":
			cfg.Addr = *addr
		}
	})
	if err := cfg.Validate(); err != nil {
		return invocation{}, err
	}

	return invocation{cfg: cfg, logLevel: level, serve: *serve, replayPath: *replayPath}, nil
}

func run(args []string) error {
	inv, err := parseArgs(args)
	if err != nil {
		return err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(inv.logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := inv.cfg
	switch {
	case inv.serve:
		log.Info().Str("addr", cfg.Addr).Msg("serving agent decisions")
		return agent.NewServer(cfg.Rules, cfg.Timeout).ListenAndServe(ctx, cfg.Addr)
	case inv.replayPath != "":
		return replayArchive(inv.replayPath)
	default:
		_, err := experiments.RunGames(ctx, cfg)
		return err
	}
}

// replayArchive replays every game under the rules it was recorded with.
func replayArchive(path string) error {
	records, err := replay.ReadArchive(path)
	if err != nil {
		return err
	}
	for _, record := range records {
		final, err := record.Replay(nil)
		if err != nil {
			return err
		}
		log.Info().
			Str("game", record.GameID).
			Str("layout", record.LayoutName).
			Uint64("seed", record.Seed).
			Int("moves", len(record.Moves)).
			Msgf("final scores %v", final.Scores())
	}
	return nil
}
