package game

import "errors"

var (
	// ErrIllegalAction is returned when an action is not in the agent's legal set.
	ErrIllegalAction = errors.New("illegal action")
	// ErrTerminalState is returned when a successor is requested from a finished game.
	ErrTerminalState = errors.New("terminal state")
	// ErrInvalidAgentIndex is returned for agent indices outside the game or of the wrong role.
	ErrInvalidAgentIndex = errors.New("invalid agent index")
	// ErrInvalidLayout is returned by the layout parser.
	ErrInvalidLayout = errors.New("invalid layout")
)

type StateHash uint64
