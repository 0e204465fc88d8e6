package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// GameState is one position of a pursuit game. It should be immutable:
// GenerateSuccessor always returns a new state and never touches the receiver.
// The layout and rules are shared by every state of a game; the food grid is
// shared with the predecessor until a move eats from it.
type GameState struct {
	layout *Layout
	rules  *Rules

	agents   []AgentState
	food     *Grid
	numFood  int
	capsules []Point

	scores []float64
	delta  []float64 // pending score change of the half-move being applied

	primaryDied  bool
	rivalDied    bool
	pursuersLose bool
	lastMover    int
}

// NewGameState builds the initial state of a game on layout with up to
// numPursuers pursuers. A nil rules uses DefaultSettings with seed 0.
func NewGameState(layout *Layout, numPursuers int, rules *Rules) (*GameState, error) {
	if layout == nil {
		return nil, fmt.Errorf("new game state: %w: nil layout", ErrInvalidLayout)
	}
	if numPursuers < 0 {
		return nil, fmt.Errorf("new game state: negative pursuer count %d", numPursuers)
	}
	if rules == nil {
		rules = NewRules(DefaultSettings(), 0)
	}
	numPursuers = min(numPursuers, layout.NumPursuers())

	agents := make([]AgentState, 0, FirstPursuer+numPursuers)
	agents = append(agents, newAgentState(Primary, layout.primary), newAgentState(Rival, layout.rival))
	for _, cell := range layout.pursuers[:numPursuers] {
		agents = append(agents, newAgentState(Pursuer, cell))
	}

	food := layout.Food()
	return &GameState{
		layout:    layout,
		rules:     rules,
		agents:    agents,
		food:      food,
		numFood:   food.Count(),
		capsules:  layout.capsules,
		scores:    make([]float64, len(agents)),
		delta:     make([]float64, len(agents)),
		lastMover: -1,
	}, nil
}

func (s *GameState) clone() *GameState {
	agents := make([]AgentState, len(s.agents))
	copy(agents, s.agents)
	scores := make([]float64, len(s.scores))
	copy(scores, s.scores)

	c := *s
	c.agents = agents
	c.scores = scores
	c.delta = make([]float64, len(s.agents))
	return &c
}

func (s *GameState) validIndex(index int) error {
	if index < 0 || index >= len(s.agents) {
		return fmt.Errorf("agent %d of %d: %w", index, len(s.agents), ErrInvalidAgentIndex)
	}
	return nil
}

// LegalActions returns the actions agent index may take. A terminal state has none.
func (s *GameState) LegalActions(index int) ([]Direction, error) {
	if err := s.validIndex(index); err != nil {
		return nil, err
	}
	if s.IsTerminal() {
		return nil, nil
	}
	return s.rules.forRole(RoleOf(index)).legalActions(s, index), nil
}

func (s *GameState) isLegal(index int, action Direction) bool {
	for _, d := range s.rules.forRole(RoleOf(index)).legalActions(s, index) {
		if d == action {
			return true
		}
	}
	return false
}

// GenerateSuccessor returns the state after agent index takes action.
func (s *GameState) GenerateSuccessor(index int, action Direction) (*GameState, error) {
	if s.IsTerminal() {
		return nil, fmt.Errorf("agent %d %s: %w", index, action, ErrTerminalState)
	}
	if err := s.validIndex(index); err != nil {
		return nil, err
	}
	if !s.isLegal(index, action) {
		return nil, fmt.Errorf("agent %d %s at %s: %w", index, action, s.agents[index].Position(), ErrIllegalAction)
	}

	next := s.clone()
	role := RoleOf(index)
	next.rules.forRole(role).applyAction(next, index, action)
	if role != Pursuer {
		next.delta[index] -= next.rules.settings.TimePenalty
	}
	next.rules.checkDeath(next, index)
	next.lastMover = index

	for i, d := range next.delta {
		next.scores[i] += d
		next.delta[i] = 0
	}
	return next, nil
}

// Play applies a recorded move.
func (s *GameState) Play(move Move) (*GameState, error) {
	return s.GenerateSuccessor(move.Agent, move.Action)
}

// Scores returns a copy of the cumulative score of every agent.
func (s *GameState) Scores() []float64 {
	scores := make([]float64, len(s.scores))
	copy(scores, s.scores)
	return scores
}

func (s *GameState) AgentState(index int) (AgentState, error) {
	if err := s.validIndex(index); err != nil {
		return AgentState{}, err
	}
	return s.agents[index], nil
}

func (s *GameState) PrimaryPosition() Position { return s.agents[PrimaryIndex].Position() }
func (s *GameState) RivalPosition() Position   { return s.agents[RivalIndex].Position() }

// PursuerState returns the state of pursuer index, which counts from FirstPursuer.
func (s *GameState) PursuerState(index int) (AgentState, error) {
	if index < FirstPursuer || index >= len(s.agents) {
		return AgentState{}, fmt.Errorf("pursuer %d of %d agents: %w", index, len(s.agents), ErrInvalidAgentIndex)
	}
	return s.agents[index], nil
}

func (s *GameState) PursuerPosition(index int) (Position, error) {
	agent, err := s.PursuerState(index)
	if err != nil {
		return Position{}, err
	}
	return agent.Position(), nil
}

func (s *GameState) PursuerPositions() []Position {
	positions := make([]Position, 0, len(s.agents)-FirstPursuer)
	for _, a := range s.agents[FirstPursuer:] {
		positions = append(positions, a.Position())
	}
	return positions
}

func (s *GameState) NumAgents() int { return len(s.agents) }
func (s *GameState) NumFood() int   { return s.numFood }

func (s *GameState) HasFood(x, y int) bool { return s.food.Get(x, y) }
func (s *GameState) HasWall(x, y int) bool { return s.layout.IsWall(x, y) }

// Food returns a copy of the remaining food.
func (s *GameState) Food() *Grid { return s.food.Copy() }

func (s *GameState) Capsules() []Point {
	capsules := make([]Point, len(s.capsules))
	copy(capsules, s.capsules)
	return capsules
}

func (s *GameState) Layout() *Layout { return s.layout }
func (s *GameState) Rules() *Rules   { return s.rules }

// IsTerminal reports whether a forager was caught or all food is gone.
func (s *GameState) IsTerminal() bool {
	return s.primaryDied || s.rivalDied || s.pursuersLose
}

func (s *GameState) PrimaryDied() bool  { return s.primaryDied }
func (s *GameState) RivalDied() bool    { return s.rivalDied }
func (s *GameState) PursuersLose() bool { return s.pursuersLose }
func (s *GameState) PursuersWin() bool  { return s.primaryDied || s.rivalDied }

// PrimaryWins reports whether the primary is ahead of the rival.
func (s *GameState) PrimaryWins() bool {
	return s.scores[PrimaryIndex] > s.scores[RivalIndex]
}

// LastMover is the index of the agent whose move produced this state, -1 for
// the initial state.
func (s *GameState) LastMover() int { return s.lastMover }

func (s *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	for _, a := range s.agents {
		binary.Write(hasher, binary.LittleEndian, math.Float64bits(a.Configuration.Position.X))
		binary.Write(hasher, binary.LittleEndian, math.Float64bits(a.Configuration.Position.Y))
		binary.Write(hasher, binary.LittleEndian, int64(a.Configuration.Direction))
		binary.Write(hasher, binary.LittleEndian, int64(a.ScaredTimer))
	}

	for _, c := range s.food.cells {
		binary.Write(hasher, binary.LittleEndian, c)
	}

	for _, score := range s.scores {
		binary.Write(hasher, binary.LittleEndian, math.Float64bits(score))
	}

	binary.Write(hasher, binary.LittleEndian, []bool{s.primaryDied, s.rivalDied, s.pursuersLose})

	return StateHash(hasher.Sum64())
}

// String draws the board in layout notation with the current agent positions,
// followed by the scores.
func (s *GameState) String() string {
	width, height := s.layout.Width(), s.layout.Height()
	board := make([][]byte, height)
	for y := range board {
		board[y] = make([]byte, width)
		for x := range board[y] {
			switch {
			case s.layout.IsWall(x, y):
				board[y][x] = '%'
			case s.food.Get(x, y):
				board[y][x] = '.'
			default:
				board[y][x] = ' '
			}
		}
	}
	for _, c := range s.capsules {
		board[c.Y][c.X] = 'o'
	}
	for i, a := range s.agents {
		cell := a.Position().Nearest()
		if cell.X < 0 || cell.X >= width || cell.Y < 0 || cell.Y >= height {
			continue
		}
		switch RoleOf(i) {
		case Primary:
			board[cell.Y][cell.X] = 'P'
		case Rival:
			board[cell.Y][cell.X] = 'R'
		default:
			board[cell.Y][cell.X] = 'G'
		}
	}

	var sb strings.Builder
	for y := height - 1; y >= 0; y-- {
		sb.Write(board[y])
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "scores: %v", s.scores)
	return sb.String()
}
