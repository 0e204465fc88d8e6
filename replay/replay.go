package replay

import (
	"fmt"

	"pursuit/game"
)

// Record is everything needed to replay a game: the board, the pursuer count,
// the rules it was played under and every half-move in play order.
type Record struct {
	GameID     string
	LayoutName string
	Layout     string // layout text, as accepted by game.ParseLayout
	Pursuers   int
	Seed       uint64
	Settings   game.Settings
	Moves      []game.Move
}

func NewRecord(gameID string, layout *game.Layout, pursuers int, rules *game.Rules) *Record {
	return &Record{
		GameID:     gameID,
		LayoutName: layout.Name(),
		Layout:     layout.Text(),
		Pursuers:   pursuers,
		Seed:       rules.Seed(),
		Settings:   rules.Settings(),
	}
}

func (r *Record) Add(move game.Move) {
	r.Moves = append(r.Moves, move)
}

// Initial rebuilds the starting state of the game under the recorded rules.
func (r *Record) Initial() (*game.GameState, error) {
	if err := r.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("replay %s: %w", r.GameID, err)
	}
	layout, err := game.ParseLayout(r.LayoutName, r.Layout)
	if err != nil {
		return nil, err
	}
	return game.NewGameState(layout, r.Pursuers, game.NewRules(r.Settings, r.Seed))
}

// Replay plays every recorded move from the initial state and returns the final
// state. visit, when not nil, sees each state right after its move.
func (r *Record) Replay(visit func(step int, move game.Move, state *game.GameState) error) (*game.GameState, error) {
	state, err := r.Initial()
	if err != nil {
		return nil, err
	}
	for step, move := range r.Moves {
		state, err = state.Play(move)
		if err != nil {
			return nil, fmt.Errorf("replay %s step %d (%s): %w", r.GameID, step, move, err)
		}
		if visit != nil {
			if err := visit(step, move, state); err != nil {
				return nil, err
			}
		}
	}
	return state, nil
}
