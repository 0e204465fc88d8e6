package game

import "fmt"

// Move is one half-move: a single agent's action.
type Move struct {
	Agent  int       `json:"agent"`
	Action Direction `json:"action"`
}

func (m Move) String() string {
	return fmt.Sprintf("%d:%s", m.Agent, m.Action)
}
