package searcher

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"multiagent/game"

	"golang.org/x/exp/rand"
)

// mockState is a node of an explicit game tree. Actions are the child indices
// in order; Successor fails if called for an agent other than the one whose
// ply the node belongs to.
type mockState struct {
	agents   int
	mover    int
	score    float64
	terminal bool
	broken   bool // Successor rejects every action
	children []*mockState
}

func (m *mockState) AgentCount() int {
	return m.agents
}

func (m *mockState) LegalActions(agent int) []game.Action {
	if m.broken {
		return []game.Action{"x"}
	}
	actions := make([]game.Action, len(m.children))
	for i := range m.children {
		actions[i] = game.Action(strconv.Itoa(i))
	}
	return actions
}

func (m *mockState) Successor(agent int, action game.Action) (game.State, error) {
	if agent != m.mover {
		return nil, fmt.Errorf("agent %d moved during agent %d's ply", agent, m.mover)
	}
	i, err := strconv.Atoi(string(action))
	if err != nil || i < 0 || i >= len(m.children) {
		return nil, fmt.Errorf("%w: %s", game.ErrInvalidAction, action)
	}
	return m.children[i], nil
}

func (m *mockState) IsTerminal() bool {
	return m.terminal
}

func (m *mockState) Score() float64 {
	return m.score
}

func leaf(score float64) *mockState {
	return &mockState{score: score}
}

func leaves(scores ...float64) []*mockState {
	nodes := make([]*mockState, len(scores))
	for i, s := range scores {
		nodes[i] = leaf(s)
	}
	return nodes
}

func node(children ...*mockState) *mockState {
	return &mockState{children: children}
}

// tree sets the agent count on every node and assigns plies in turn order.
func tree(agents int, root *mockState) *mockState {
	var walk func(n *mockState, ply int)
	walk = func(n *mockState, ply int) {
		n.agents = agents
		n.mover = ply % agents
		for _, child := range n.children {
			walk(child, ply+1)
		}
	}
	walk(root, 0)
	return root
}

// randomTree builds a full tree spanning rounds*agents plies. Scores come
// from a small range so ties are common, and some inner nodes are terminal.
func randomTree(r *rand.Rand, agents, rounds, branching int) *mockState {
	var build func(ply int) *mockState
	build = func(ply int) *mockState {
		n := &mockState{score: float64(r.Intn(10))}
		if ply == agents*rounds {
			return n
		}
		if ply > 0 && r.Float64() < 0.1 {
			n.terminal = true
			return n
		}
		width := 1 + r.Intn(branching)
		for i := 0; i < width; i++ {
			n.children = append(n.children, build(ply+1))
		}
		return n
	}
	return tree(agents, build(0))
}

// countingEvaluation wraps EvaluateScore and counts its calls.
func countingEvaluation() (game.Evaluate, *atomic.Int64) {
	var calls atomic.Int64
	return func(s game.State) float64 {
		calls.Add(1)
		return s.Score()
	}, &calls
}
