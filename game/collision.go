package game

import "golang.org/x/exp/rand"

// checkDeath resolves captures after agent index has moved.
//
// A forager that moved is tested against the first pursuer only. A pursuer that
// moved is tested against both foragers; if both are in reach it catches one of
// them, chosen by a draw seeded from the rules seed and the state hash so the
// same game always resolves the same way.
func (r *Rules) checkDeath(s *GameState, index int) {
	if index == PrimaryIndex || index == RivalIndex {
		if len(s.agents) <= FirstPursuer {
			return
		}
		if r.canKill(s.agents[index].Position(), s.agents[FirstPursuer].Position()) {
			r.collide(s, index, FirstPursuer)
		}
		return
	}

	pursuer := s.agents[index].Position()
	primaryInReach := r.canKill(s.agents[PrimaryIndex].Position(), pursuer)
	rivalInReach := r.canKill(s.agents[RivalIndex].Position(), pursuer)
	switch {
	case primaryInReach && rivalInReach:
		rng := rand.New(rand.NewSource(r.seed ^ uint64(s.Hash())))
		if rng.Intn(2) == 0 {
			r.collide(s, PrimaryIndex, index)
		} else {
			r.collide(s, RivalIndex, index)
		}
	case primaryInReach:
		r.collide(s, PrimaryIndex, index)
	case rivalInReach:
		r.collide(s, RivalIndex, index)
	}
}

func (r *Rules) canKill(forager, pursuer Position) bool {
	return pursuer.ManhattanDistance(forager) <= r.settings.CollisionTolerance
}

// collide records that captor caught the forager at index caught. Once the
// pursuers have already lost nothing changes.
func (r *Rules) collide(s *GameState, caught, captor int) {
	if s.pursuersLose {
		return
	}
	s.delta[caught] -= r.settings.CapturePenalty
	s.delta[captor] += r.settings.CapturePenalty
	if caught == PrimaryIndex {
		s.primaryDied = true
	} else {
		s.rivalDied = true
	}
}
