package searcher

import (
	"math"

	"multiagent/experiments/metrics"
	"multiagent/game"
)

// Minimax assumes every opponent picks the move worst for agent 0.
type Minimax struct {
	settings
}

func NewMinimax(depth int, evaluate game.Evaluate, options ...Option) (*Minimax, error) {
	s, err := newSettings(depth, evaluate, options)
	if err != nil {
		return nil, err
	}
	return &Minimax{settings: s}, nil
}

func (m *Minimax) ChooseAction(state game.State) (game.Action, error) {
	result, err := m.Search(state)
	return result.Action, err
}

func (m *Minimax) Search(state game.State) (Result, error) {
	return m.search(MinimaxKind, state, m.value)
}

func (m *Minimax) value(state game.State, t turn, c metrics.Collector) (float64, error) {
	c.AddNode()
	if t.cutoff(state) {
		return m.leaf(state, c), nil
	}

	actions, err := legalActions(state, t.agent)
	if err != nil {
		return 0, err
	}

	maximizing := t.agent == 0
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	next := t.next(state.AgentCount())
	for _, action := range actions {
		child, err := successor(state, t.agent, action)
		if err != nil {
			return 0, err
		}
		v, err := m.value(child, next, c)
		if err != nil {
			return 0, err
		}
		if maximizing {
			best = math.Max(best, v)
		} else {
			best = math.Min(best, v)
		}
	}
	return best, nil
}
