package game

import "math"

// Role is the faction an agent plays for. Each role has its own rule module.
type Role int

const (
	Primary Role = iota
	Rival
	Pursuer
)

// Fixed agent indices. Every index from FirstPursuer on is a pursuer.
const (
	PrimaryIndex = 0
	RivalIndex   = 1
	FirstPursuer = 2
)

func (r Role) String() string {
	switch r {
	case Primary:
		return "primary"
	case Rival:
		return "rival"
	case Pursuer:
		return "pursuer"
	default:
		return "unknown"
	}
}

// RoleOf maps an agent index to its role.
func RoleOf(index int) Role {
	switch index {
	case PrimaryIndex:
		return Primary
	case RivalIndex:
		return Rival
	default:
		return Pursuer
	}
}

// latticeTolerance is how far an agent may sit off a cell center and still turn.
const latticeTolerance = 0.001

// Configuration is where an agent is and where it is heading.
type Configuration struct {
	Position  Position
	Direction Direction
}

// Successor returns the configuration after moving by v. A zero move keeps the
// previous heading.
func (c Configuration) Successor(v Vector) Configuration {
	direction := v.Direction()
	if direction == Stop {
		direction = c.Direction
	}
	return Configuration{Position: c.Position.Add(v), Direction: direction}
}

// OnLattice reports whether the agent is centered on a cell.
func (c Configuration) OnLattice() bool {
	nearest := c.Position.Nearest()
	return math.Abs(c.Position.X-float64(nearest.X))+math.Abs(c.Position.Y-float64(nearest.Y)) <= latticeTolerance
}

// AgentState is everything tracked for one agent.
type AgentState struct {
	Role          Role
	Configuration Configuration
	Start         Configuration
	ScaredTimer   int // pursuers only
}

func newAgentState(role Role, cell Point) AgentState {
	conf := Configuration{Position: cell.Position(), Direction: Stop}
	return AgentState{Role: role, Configuration: conf, Start: conf}
}

func (a AgentState) Position() Position {
	return a.Configuration.Position
}

func (a AgentState) Direction() Direction {
	return a.Configuration.Direction
}

// PossibleActions lists the directions an agent in conf can take without entering
// a wall. Stop is always included. Agents between cells may only keep going.
func PossibleActions(conf Configuration, layout *Layout) []Direction {
	if !conf.OnLattice() {
		return []Direction{conf.Direction}
	}
	cell := conf.Position.Nearest()
	possible := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		v := d.Vector(1)
		if !layout.IsWall(cell.X+int(v.DX), cell.Y+int(v.DY)) {
			possible = append(possible, d)
		}
	}
	return possible
}
