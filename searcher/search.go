package searcher

import (
	"context"
	"fmt"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(s *settings)

type settings struct {
	depth      int // Rounds, not plies
	evaluate   game.Evaluate
	goroutines int
}

// WithGoroutines searches up to n root actions concurrently. Every root action
// starts from a fresh window, so the chosen action does not depend on n.
func WithGoroutines(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.goroutines = n
		}
	}
}

func newSettings(depth int, evaluate game.Evaluate, options []Option) (settings, error) {
	if depth <= 0 {
		return settings{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	if evaluate == nil {
		return settings{}, ErrNilEvaluation
	}
	s := settings{ // Default values
		depth:      depth,
		evaluate:   evaluate,
		goroutines: 1,
	}
	for _, option := range options {
		option(&s)
	}
	return s, nil
}

// rootValue computes the value of the state reached by one of agent 0's root
// actions, where it is t.agent's turn.
type rootValue func(successor game.State, t turn, c metrics.Collector) (float64, error)

// search values every root action and keeps the first one with the highest
// value. Any error aborts the whole search and root actions not yet started
// are skipped.
func (s settings) search(kind Kind, state game.State, value rootValue) (Result, error) {
	if state.IsTerminal() {
		return Result{}, ErrTerminalRoot
	}
	actions, err := legalActions(state, 0)
	if err != nil {
		return Result{}, err
	}

	c := metrics.NewCollector()
	c.Start(string(kind), s.depth, s.goroutines)
	c.AddNode()

	root := turn{agent: 0, rounds: s.depth}
	next := root.next(state.AgentCount())
	values := make([]float64, len(actions))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(s.goroutines)
	for i, action := range actions {
		i, action := i, action
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			child, err := successor(state, 0, action)
			if err != nil {
				return err
			}
			v, err := value(child, next, c)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := utils.FirstMax(values)
	metric := c.Complete()
	log.Debug().
		Str("algorithm", string(kind)).
		Int("depth", s.depth).
		Int("nodes", metric.Nodes).
		Dur("duration", metric.Duration).
		Msgf("chose %s with value %.3f", actions[best], values[best])

	return Result{
		Action:  actions[best],
		Value:   values[best],
		Actions: actions,
		Values:  values,
		Metric:  metric,
	}, nil
}

func legalActions(state game.State, agent int) ([]game.Action, error) {
	actions := state.LegalActions(agent)
	if len(actions) == 0 {
		return nil, fmt.Errorf("%w: agent %d", ErrNoLegalActions, agent)
	}
	return actions, nil
}

func successor(state game.State, agent int, action game.Action) (game.State, error) {
	next, err := state.Successor(agent, action)
	if err != nil {
		return nil, fmt.Errorf("successor of %s for agent %d: %w", action, agent, err)
	}
	return next, nil
}

// leaf scores a state the recursion does not expand
func (s settings) leaf(state game.State, c metrics.Collector) float64 {
	c.AddEvaluation()
	return s.evaluate(state)
}
