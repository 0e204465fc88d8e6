package game

import "fmt"

// Consumption is how one food pellet shifts the pending score deltas when a
// forager eats it. Negative values are costs.
type Consumption struct {
	Self     float64 `yaml:"self" json:"self"`
	Other    float64 `yaml:"other" json:"other"`       // the other forager
	Pursuers float64 `yaml:"pursuers" json:"pursuers"` // each pursuer
}

// Settings holds the scoring and movement constants of a game.
type Settings struct {
	TimePenalty        float64     `yaml:"time_penalty" json:"time_penalty"`
	CapturePenalty     float64     `yaml:"capture_penalty" json:"capture_penalty"`
	CollisionTolerance float64     `yaml:"collision_tolerance" json:"collision_tolerance"`
	ForagerSpeed       float64     `yaml:"forager_speed" json:"forager_speed"`
	PursuerSpeed       float64     `yaml:"pursuer_speed" json:"pursuer_speed"`
	PrimaryConsumption Consumption `yaml:"primary_consumption" json:"primary_consumption"`
	RivalConsumption   Consumption `yaml:"rival_consumption" json:"rival_consumption"`
}

func DefaultSettings() Settings {
	return Settings{
		TimePenalty:        1,
		CapturePenalty:     200,
		CollisionTolerance: 0.7,
		ForagerSpeed:       1,
		PursuerSpeed:       1,
		PrimaryConsumption: Consumption{Self: 20, Other: -10, Pursuers: -10},
		RivalConsumption:   Consumption{Self: 20, Other: -20, Pursuers: -20},
	}
}

func (s Settings) Validate() error {
	if s.ForagerSpeed <= 0 || s.PursuerSpeed <= 0 {
		return fmt.Errorf("speeds must be positive, got forager=%g pursuer=%g", s.ForagerSpeed, s.PursuerSpeed)
	}
	if s.CollisionTolerance < 0 {
		return fmt.Errorf("collision tolerance must not be negative, got %g", s.CollisionTolerance)
	}
	return nil
}
