package searcher

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pursuit/game"
)

// Observer is told about every state a search visits, before it is expanded.
type Observer interface {
	Visit(state *game.GameState, agent, depth int)
}

type ObserverFunc func(state *game.GameState, agent, depth int)

func (f ObserverFunc) Visit(state *game.GameState, agent, depth int) {
	f(state, agent, depth)
}

type nopObserver struct{}

func (nopObserver) Visit(*game.GameState, int, int) {}

// LogObserver traces each visited node.
type LogObserver struct {
	Logger zerolog.Logger
}

func NewLogObserver() *LogObserver {
	return &LogObserver{Logger: log.With().Str("component", "multimax").Logger()}
}

func (o *LogObserver) Visit(state *game.GameState, agent, depth int) {
	o.Logger.Trace().
		Int("agent", agent).
		Int("depth", depth).
		Uint64("hash", uint64(state.Hash())).
		Floats64("scores", state.Scores()).
		Msg("visit")
}

// ExploredSet records the distinct states visited. It is not safe for
// concurrent use.
type ExploredSet struct {
	seen map[game.StateHash]struct{}
}

func NewExploredSet() *ExploredSet {
	return &ExploredSet{seen: make(map[game.StateHash]struct{})}
}

func (e *ExploredSet) Visit(state *game.GameState, agent, depth int) {
	e.seen[state.Hash()] = struct{}{}
}

func (e *ExploredSet) Contains(hash game.StateHash) bool {
	_, ok := e.seen[hash]
	return ok
}

func (e *ExploredSet) Len() int { return len(e.seen) }

func (e *ExploredSet) Reset() { clear(e.seen) }

// Observers fans a visit out to several observers.
type Observers []Observer

func (obs Observers) Visit(state *game.GameState, agent, depth int) {
	for _, o := range obs {
		o.Visit(state, agent, depth)
	}
}
