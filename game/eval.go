package game

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrUnknownEvaluation = errors.New("unknown evaluation function")

var evaluations = map[string]Evaluate{
	"scoreEvaluationFunction":  EvaluateScore,
	"score":                    EvaluateScore,
	"betterEvaluationFunction": EvaluateBetter,
	"better":                   EvaluateBetter,
}

// LookupEvaluation resolves an evaluation function by its configured name.
func LookupEvaluation(name string) (Evaluate, error) {
	evaluate, ok := evaluations[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluation, name)
	}
	return evaluate, nil
}

func EvaluationNames() []string {
	names := make([]string, 0, len(evaluations))
	for name := range evaluations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EvaluateScore returns the raw game score.
func EvaluateScore(s State) float64 {
	return s.Score()
}

// EvaluateBetter rewards being close to food and penalizes ghosts nearby and
// capsules left on the board:
//
//	score + 1/(minFood+1) - 1/(sumGhosts+1) - ghostsWithin1 - capsules
//
// All distances are Manhattan. minFood is 0 when no food remains.
func EvaluateBetter(s State) float64 {
	f, ok := s.(Features)
	if !ok {
		panic("state does not expose evaluation features")
	}
	pacman := f.PacmanPosition()

	minFood := 0
	for i, food := range f.Food() {
		if d := pacman.Manhattan(food); i == 0 || d < minFood {
			minFood = d
		}
	}

	sumGhosts := 0
	nearGhosts := 0
	for _, ghost := range f.GhostPositions() {
		d := pacman.Manhattan(ghost)
		sumGhosts += d
		if d <= 1 {
			nearGhosts++
		}
	}

	return s.Score() +
		1/float64(minFood+1) -
		1/float64(sumGhosts+1) -
		float64(nearGhosts) -
		float64(f.CapsuleCount())
}

// EvaluateReflex scores the result of pacman taking action from s as the
// distance to the closest ghost over the distance to the closest food left in
// s, both Euclidean. Used by one-step reflex agents rather than searchers.
func EvaluateReflex(s State, action Action) (float64, error) {
	next, err := s.Successor(0, action)
	if err != nil {
		return 0, err
	}
	current, ok := s.(Features)
	if !ok {
		panic("state does not expose evaluation features")
	}
	after, ok := next.(Features)
	if !ok {
		panic("state does not expose evaluation features")
	}
	pacman := after.PacmanPosition()

	ghostDist := closest(pacman, after.GhostPositions(), 1)
	foodDist := closest(pacman, current.Food(), 0)
	return ghostDist / (foodDist + 1), nil
}

// closest returns the smallest Euclidean distance from p to targets, or
// fallback when there are none.
func closest(p Position, targets []Position, fallback float64) float64 {
	if len(targets) == 0 {
		return fallback
	}
	best := math.Inf(1)
	for _, t := range targets {
		d := math.Hypot(float64(p.X-t.X), float64(p.Y-t.Y))
		best = math.Min(best, d)
	}
	return best
}
