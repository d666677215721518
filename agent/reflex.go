package agent

import (
	"fmt"
	"math"
	"sync"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"golang.org/x/exp/rand"
)

// Reflex plays agent 0 by scoring each legal action one step ahead with
// game.EvaluateReflex, breaking ties uniformly at random.
type Reflex struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewReflex(seed uint64) *Reflex {
	return &Reflex{rng: rand.New(rand.NewSource(seed))}
}

func (r *Reflex) GetAction(state game.State) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(0)
	if len(actions) == 0 {
		return "", metrics.SearchMetric{}, fmt.Errorf("%w: agent 0", ErrNoActions)
	}

	c := metrics.NewCollector()
	c.Start(string(ReflexKind), 1, 1)
	c.AddNode()

	best := math.Inf(-1)
	var candidates []game.Action
	for _, action := range actions {
		c.AddNode()
		c.AddEvaluation()
		score, err := game.EvaluateReflex(state, action)
		if err != nil {
			return "", metrics.SearchMetric{}, err
		}
		switch {
		case score > best:
			best = score
			candidates = []game.Action{action}
		case score == best:
			candidates = append(candidates, action)
		}
	}

	r.mu.Lock()
	chosen := candidates[r.rng.Intn(len(candidates))]
	r.mu.Unlock()
	return chosen, c.Complete(), nil
}
