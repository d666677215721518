package searcher

import (
	"math"

	"multiagent/experiments/metrics"
	"multiagent/game"
)

// AlphaBeta returns the same action and value as Minimax while skipping
// subtrees that cannot change the result.
//
// alpha is the best value agent 0 can already guarantee on the current path
// and beta the best an opponent can. A node stops expanding once a child is
// strictly outside the window; equal values are still expanded. Each root
// action is searched with a fresh (-Inf, +Inf) window.
type AlphaBeta struct {
	settings
}

func NewAlphaBeta(depth int, evaluate game.Evaluate, options ...Option) (*AlphaBeta, error) {
	s, err := newSettings(depth, evaluate, options)
	if err != nil {
		return nil, err
	}
	return &AlphaBeta{settings: s}, nil
}

func (a *AlphaBeta) ChooseAction(state game.State) (game.Action, error) {
	result, err := a.Search(state)
	return result.Action, err
}

func (a *AlphaBeta) Search(state game.State) (Result, error) {
	return a.search(AlphaBetaKind, state, func(child game.State, t turn, c metrics.Collector) (float64, error) {
		return a.value(child, t, math.Inf(-1), math.Inf(1), c)
	})
}

func (a *AlphaBeta) value(state game.State, t turn, alpha, beta float64, c metrics.Collector) (float64, error) {
	c.AddNode()
	if t.cutoff(state) {
		return a.leaf(state, c), nil
	}

	actions, err := legalActions(state, t.agent)
	if err != nil {
		return 0, err
	}

	next := t.next(state.AgentCount())
	if t.agent == 0 {
		best := math.Inf(-1)
		for _, action := range actions {
			child, err := successor(state, t.agent, action)
			if err != nil {
				return 0, err
			}
			v, err := a.value(child, next, alpha, beta, c)
			if err != nil {
				return 0, err
			}
			best = math.Max(best, v)
			if best > beta { // An opponent above will never allow this branch
				return best, nil
			}
			alpha = math.Max(alpha, best)
		}
		return best, nil
	}

	best := math.Inf(1)
	for _, action := range actions {
		child, err := successor(state, t.agent, action)
		if err != nil {
			return 0, err
		}
		v, err := a.value(child, next, alpha, beta, c)
		if err != nil {
			return 0, err
		}
		best = math.Min(best, v)
		if best < alpha {
			return best, nil
		}
		beta = math.Min(beta, best)
	}
	return best, nil
}
