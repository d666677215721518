package game

import "errors"

// Action is an opaque move token. The order in which a state enumerates its
// legal actions is significant to the searchers' tie-breaking.
type Action string

const (
	North Action = "North"
	South Action = "South"
	East  Action = "East"
	West  Action = "West"
	Stop  Action = "Stop"
)

var (
	ErrInvalidAction = errors.New("action is not legal")
	ErrTerminalState = errors.New("cannot generate successor of a terminal state")
)

// State should be immutable - operations on State always return a new copy.
// Agent 0 is the maximizing agent; agents 1..AgentCount()-1 are its opponents.
type State interface {
	AgentCount() int
	LegalActions(agent int) []Action
	Successor(agent int, action Action) (State, error)
	IsTerminal() bool
	Score() float64
}

// Features exposes what evaluation functions need beyond the score.
type Features interface {
	PacmanPosition() Position
	Food() []Position
	GhostPositions() []Position
	CapsuleCount() int
}

// Evaluates the game state to a score where higher is better for agent 0.
type Evaluate func(State) float64

type Position struct {
	X, Y int
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) Manhattan(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
