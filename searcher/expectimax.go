package searcher

import (
	"math"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/utils"
)

// Expectimax models every opponent as a chance agent picking uniformly among
// its legal actions. Averaging nodes admit no alpha-beta pruning.
type Expectimax struct {
	settings
}

func NewExpectimax(depth int, evaluate game.Evaluate, options ...Option) (*Expectimax, error) {
	s, err := newSettings(depth, evaluate, options)
	if err != nil {
		return nil, err
	}
	return &Expectimax{settings: s}, nil
}

func (e *Expectimax) ChooseAction(state game.State) (game.Action, error) {
	result, err := e.Search(state)
	return result.Action, err
}

func (e *Expectimax) Search(state game.State) (Result, error) {
	return e.search(ExpectimaxKind, state, e.value)
}

func (e *Expectimax) value(state game.State, t turn, c metrics.Collector) (float64, error) {
	c.AddNode()
	if t.cutoff(state) {
		return e.leaf(state, c), nil
	}

	actions, err := legalActions(state, t.agent)
	if err != nil {
		return 0, err
	}

	next := t.next(state.AgentCount())
	values := make([]float64, len(actions))
	for i, action := range actions {
		child, err := successor(state, t.agent, action)
		if err != nil {
			return 0, err
		}
		values[i], err = e.value(child, next, c)
		if err != nil {
			return 0, err
		}
	}

	if t.agent == 0 {
		best := math.Inf(-1)
		for _, v := range values {
			best = math.Max(best, v)
		}
		return best, nil
	}
	return utils.Mean(values), nil // Each action has probability 1/len(actions)
}
