package agent

import (
	"fmt"
	"sync"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"golang.org/x/exp/rand"
)

// RandomGhost moves agent Index uniformly at random among its legal actions.
type RandomGhost struct {
	Index int

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomGhost(index int, seed uint64) *RandomGhost {
	return &RandomGhost{Index: index, rng: rand.New(rand.NewSource(seed))}
}

func (g *RandomGhost) GetAction(state game.State) (game.Action, metrics.SearchMetric, error) {
	actions := state.LegalActions(g.Index)
	if len(actions) == 0 {
		return "", metrics.SearchMetric{}, fmt.Errorf("%w: agent %d", ErrNoActions, g.Index)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return actions[g.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}
