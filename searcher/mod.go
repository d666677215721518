package searcher

import (
	"errors"
	"fmt"

	"multiagent/experiments/metrics"
	"multiagent/game"
)

type Kind string

const (
	MinimaxKind    Kind = "minimax"
	AlphaBetaKind  Kind = "alphabeta"
	ExpectimaxKind Kind = "expectimax"
)

var (
	ErrInvalidDepth   = errors.New("search depth must be positive")
	ErrNilEvaluation  = errors.New("evaluation function is required")
	ErrUnknownKind    = errors.New("unknown search algorithm")
	ErrTerminalRoot   = errors.New("cannot search from a terminal state")
	ErrNoLegalActions = errors.New("non-terminal state has no legal actions")
)

// Searcher picks agent 0's action by exploring a bounded game tree. Each call
// is independent: nothing is cached between searches.
type Searcher interface {
	ChooseAction(state game.State) (game.Action, error)
	// Search returns the chosen action along with the value of every root
	// action and the work done to compute them.
	Search(state game.State) (Result, error)
}

type Result struct {
	Action  game.Action
	Value   float64
	Actions []game.Action // Agent 0's legal actions in enumeration order
	Values  []float64     // Value of each entry of Actions
	Metric  metrics.SearchMetric
}

// New builds the searcher named by kind.
func New(kind Kind, depth int, evaluate game.Evaluate, options ...Option) (Searcher, error) {
	switch kind {
	case MinimaxKind:
		return NewMinimax(depth, evaluate, options...)
	case AlphaBetaKind:
		return NewAlphaBeta(depth, evaluate, options...)
	case ExpectimaxKind:
		return NewExpectimax(depth, evaluate, options...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func Kinds() []Kind {
	return []Kind{MinimaxKind, AlphaBetaKind, ExpectimaxKind}
}
