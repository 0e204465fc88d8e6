package game

import "pursuit/utils"

// roleRules is the capability pair every role exposes. applyAction edits a
// state that the caller has already cloned.
type roleRules interface {
	legalActions(s *GameState, index int) []Direction
	applyAction(s *GameState, index int, action Direction)
}

// Rules binds the settings of a game to its role rule modules and the seed
// used to arbitrate simultaneous captures. It is shared read-only by every
// state of a game.
type Rules struct {
	settings Settings
	seed     uint64
	roles    map[Role]roleRules
}

func NewRules(settings Settings, seed uint64) *Rules {
	return &Rules{
		settings: settings,
		seed:     seed,
		roles: map[Role]roleRules{
			Primary: foragerRules{speed: settings.ForagerSpeed, consumption: settings.PrimaryConsumption},
			Rival:   foragerRules{speed: settings.ForagerSpeed, consumption: settings.RivalConsumption},
			Pursuer: pursuerRules{speed: settings.PursuerSpeed},
		},
	}
}

func (r *Rules) Settings() Settings { return r.settings }
func (r *Rules) Seed() uint64       { return r.seed }

func (r *Rules) forRole(role Role) roleRules {
	return r.roles[role]
}

// foragerRules govern the primary and the rival: they roam freely and eat food.
type foragerRules struct {
	speed       float64
	consumption Consumption
}

func (f foragerRules) legalActions(s *GameState, index int) []Direction {
	return PossibleActions(s.agents[index].Configuration, s.layout)
}

func (f foragerRules) applyAction(s *GameState, index int, action Direction) {
	agent := &s.agents[index]
	agent.Configuration = agent.Configuration.Successor(action.Vector(f.speed))

	next := agent.Position()
	nearest := next.Nearest()
	if nearest.Position().ManhattanDistance(next) <= 0.5 {
		f.consume(s, index, nearest)
	}
}

func (f foragerRules) consume(s *GameState, index int, cell Point) {
	if !s.food.Get(cell.X, cell.Y) {
		return
	}
	other := RivalIndex
	if index == RivalIndex {
		other = PrimaryIndex
	}
	s.delta[index] += f.consumption.Self
	s.delta[other] += f.consumption.Other
	for i := FirstPursuer; i < len(s.agents); i++ {
		s.delta[i] += f.consumption.Pursuers
	}

	// The food grid may still be shared with the predecessor and its siblings.
	s.food = s.food.Copy()
	s.food.Set(cell.X, cell.Y, false)
	s.numFood--
	if s.numFood == 0 && !s.primaryDied && !s.rivalDied {
		s.pursuersLose = true
	}
}

// pursuerRules govern the pursuers: they never stop and only reverse at dead ends.
type pursuerRules struct {
	speed float64
}

func (p pursuerRules) legalActions(s *GameState, index int) []Direction {
	conf := s.agents[index].Configuration
	possible := utils.Without(PossibleActions(conf, s.layout), Stop)
	reverse := conf.Direction.Reverse()
	if len(possible) > 1 {
		possible = utils.Without(possible, reverse)
	}
	return possible
}

func (p pursuerRules) applyAction(s *GameState, index int, action Direction) {
	agent := &s.agents[index]
	speed := p.speed
	// Capsules are never eaten, so only a caller-built state has a scared pursuer.
	if agent.ScaredTimer > 0 {
		speed /= 2
	}
	agent.Configuration = agent.Configuration.Successor(action.Vector(speed))

	if agent.ScaredTimer == 1 {
		agent.Configuration.Position = agent.Configuration.Position.Nearest().Position()
	}
	agent.ScaredTimer = max(0, agent.ScaredTimer-1)
}
