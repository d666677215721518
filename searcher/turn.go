package searcher

import "multiagent/game"

// turn is whose move it is and how many full rounds are left to search. A
// round ends after the last agent moves.
type turn struct {
	agent  int
	rounds int
}

func (t turn) next(agents int) turn {
	if t.agent >= agents-1 {
		return turn{agent: 0, rounds: t.rounds - 1}
	}
	return turn{agent: t.agent + 1, rounds: t.rounds}
}

// cutoff reports whether state should be evaluated instead of expanded.
func (t turn) cutoff(state game.State) bool {
	return t.rounds == 0 || state.IsTerminal()
}
