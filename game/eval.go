package game

import "math"

// Evaluator scores a state from the point of view of agent index. Higher is better.
type Evaluator func(s *GameState, index int) float64

// EvaluateScore is the agent's own cumulative score.
func EvaluateScore(s *GameState, index int) float64 {
	return s.scores[index]
}

// EvaluateMargin is the agent's score minus the best score of any other agent.
func EvaluateMargin(s *GameState, index int) float64 {
	best := math.Inf(-1)
	for i, score := range s.scores {
		if i != index && score > best {
			best = score
		}
	}
	if math.IsInf(best, -1) {
		return s.scores[index]
	}
	return s.scores[index] - best
}

// EvaluateProximity adds a small pull towards the agent's quarry to its own
// score: the nearest food for a forager, the nearest forager for a pursuer.
// Distances are maze distances, so walls are respected.
func EvaluateProximity(s *GameState, index int) float64 {
	score := s.scores[index]
	from := s.agents[index].Position().Nearest()

	var targets []Point
	if RoleOf(index) == Pursuer {
		targets = []Point{s.PrimaryPosition().Nearest(), s.RivalPosition().Nearest()}
	} else {
		targets = s.food.Points()
	}
	if len(targets) == 0 {
		return score
	}

	d := s.layout.MazeDistance(from, targets...)
	if d < 0 {
		return score
	}
	return score - 0.1*float64(d)
}

// MazeDistance is the number of steps from from to the closest of targets
// through open cells, or -1 when none can be reached.
func (l *Layout) MazeDistance(from Point, targets ...Point) int {
	goal := make(map[Point]bool, len(targets))
	for _, t := range targets {
		goal[t] = true
	}

	visited := map[Point]bool{from: true}
	frontier := []Point{from}
	for steps := 0; len(frontier) > 0; steps++ {
		var next []Point
		for _, p := range frontier {
			if goal[p] {
				return steps
			}
			for _, d := range Directions[:4] {
				v := d.Vector(1)
				n := Point{X: p.X + int(v.DX), Y: p.Y + int(v.DY)}
				if visited[n] || l.IsWall(n.X, n.Y) {
					continue
				}
				visited[n] = true
				next = append(next, n)
			}
		}
		frontier = next
	}
	return -1
}

// Evaluators maps the evaluator names accepted by the greedy policy and the
// agents.evaluator config key to evaluation functions.
var Evaluators = map[string]Evaluator{
	"score":     EvaluateScore,
	"margin":    EvaluateMargin,
	"proximity": EvaluateProximity,
}
