package game

import (
	"fmt"

	"multiagent/utils"
)

// Scoring rules
const (
	TimePenalty = 1.0
	FoodScore   = 10.0
	WinBonus    = 500.0
	LosePenalty = 500.0
	GhostScore  = 200.0
	ScaredTime  = 40 // Ghost moves a capsule keeps ghosts scared for
)

var directions = []Action{North, South, East, West}

var vectors = map[Action]Position{
	North: {X: 0, Y: 1},
	South: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	West:  {X: -1, Y: 0},
	Stop:  {X: 0, Y: 0},
}

var reverse = map[Action]Action{
	North: South,
	South: North,
	East:  West,
	West:  East,
	Stop:  Stop,
}

type ghost struct {
	position Position
	start    Position
	heading  Action
	scared   int // Remaining ghost moves while scared
}

// GameState represents one immutable snapshot of a game. Successor shares the
// layout and copies only what the move changes.
type GameState struct {
	layout   *Layout
	pacman   Position
	ghosts   []ghost
	food     [][]bool // Indexed [x][y], shared between states until eaten
	foodLeft int
	capsules []Position
	score    float64
	win      bool
	lose     bool
}

// NewGameState initializes the starting state of a layout.
func NewGameState(l *Layout) *GameState {
	food := make([][]bool, l.Width)
	for x := range food {
		food[x] = make([]bool, l.Height)
	}
	for _, p := range l.food {
		food[p.X][p.Y] = true
	}

	ghosts := make([]ghost, len(l.ghosts))
	for i, p := range l.ghosts {
		ghosts[i] = ghost{position: p, start: p, heading: Stop}
	}

	capsules := make([]Position, len(l.capsules))
	copy(capsules, l.capsules)

	return &GameState{
		layout:   l,
		pacman:   l.pacman,
		ghosts:   ghosts,
		food:     food,
		foodLeft: len(l.food),
		capsules: capsules,
	}
}

func (gs *GameState) Layout() *Layout { return gs.layout }

func (gs *GameState) AgentCount() int { return 1 + len(gs.ghosts) }

func (gs *GameState) Score() float64 { return gs.score }

func (gs *GameState) IsWin() bool { return gs.win }

func (gs *GameState) IsLose() bool { return gs.lose }

func (gs *GameState) IsTerminal() bool { return gs.win || gs.lose }

func (gs *GameState) PacmanPosition() Position { return gs.pacman }

func (gs *GameState) GhostPositions() []Position {
	positions := make([]Position, len(gs.ghosts))
	for i, g := range gs.ghosts {
		positions[i] = g.position
	}
	return positions
}

// ScaredTimers returns the remaining scared moves of each ghost.
func (gs *GameState) ScaredTimers() []int {
	timers := make([]int, len(gs.ghosts))
	for i, g := range gs.ghosts {
		timers[i] = g.scared
	}
	return timers
}

// Food lists remaining food column by column, bottom to top.
func (gs *GameState) Food() []Position {
	positions := make([]Position, 0, gs.foodLeft)
	for x, column := range gs.food {
		for y, hasFood := range column {
			if hasFood {
				positions = append(positions, Position{X: x, Y: y})
			}
		}
	}
	return positions
}

func (gs *GameState) HasFood(p Position) bool {
	if p.X < 0 || p.Y < 0 || p.X >= len(gs.food) || p.Y >= len(gs.food[p.X]) {
		return false
	}
	return gs.food[p.X][p.Y]
}

func (gs *GameState) CapsuleCount() int { return len(gs.capsules) }

func (gs *GameState) Capsules() []Position {
	capsules := make([]Position, len(gs.capsules))
	copy(capsules, gs.capsules)
	return capsules
}

// LegalActions lists pacman's unblocked directions followed by Stop. Ghosts
// cannot stop and only turn around when nothing else is open. Terminal states
// have no legal actions.
func (gs *GameState) LegalActions(agent int) []Action {
	if gs.IsTerminal() || agent < 0 || agent >= gs.AgentCount() {
		return nil
	}

	if agent == 0 {
		actions := gs.openDirections(gs.pacman)
		return append(actions, Stop)
	}

	g := gs.ghosts[agent-1]
	actions := gs.openDirections(g.position)
	if len(actions) > 1 {
		if i := utils.FindIndex(actions, reverse[g.heading]); i >= 0 && g.heading != Stop {
			actions = append(actions[:i], actions[i+1:]...)
		}
	}
	if len(actions) == 0 { // Walled in
		return []Action{Stop}
	}
	return actions
}

func (gs *GameState) openDirections(from Position) []Action {
	actions := make([]Action, 0, len(directions)+1)
	for _, dir := range directions {
		v := vectors[dir]
		if !gs.layout.IsWall(from.Add(v.X, v.Y)) {
			actions = append(actions, dir)
		}
	}
	return actions
}

// Successor returns the state after agent plays action. The receiver is left
// untouched.
func (gs *GameState) Successor(agent int, action Action) (State, error) {
	if gs.IsTerminal() {
		return nil, ErrTerminalState
	}
	if agent < 0 || agent >= gs.AgentCount() {
		return nil, fmt.Errorf("%w: no agent %d", ErrInvalidAction, agent)
	}
	if utils.FindIndex(gs.LegalActions(agent), action) < 0 {
		return nil, fmt.Errorf("%w: %s for agent %d", ErrInvalidAction, action, agent)
	}

	next := gs.copy()
	if agent == 0 {
		next.movePacman(action)
	} else {
		next.moveGhost(agent-1, action)
	}
	next.checkCollisions()
	return next, nil
}

func (gs *GameState) copy() *GameState {
	next := *gs
	next.ghosts = make([]ghost, len(gs.ghosts))
	copy(next.ghosts, gs.ghosts)
	return &next
}

func (gs *GameState) movePacman(action Action) {
	v := vectors[action]
	gs.pacman = gs.pacman.Add(v.X, v.Y)
	gs.score -= TimePenalty

	if gs.HasFood(gs.pacman) {
		gs.eatFood(gs.pacman)
		gs.score += FoodScore
		if gs.foodLeft == 0 {
			gs.score += WinBonus
			gs.win = true
		}
	}

	if i := utils.FindIndex(gs.capsules, gs.pacman); i >= 0 {
		capsules := make([]Position, 0, len(gs.capsules)-1)
		capsules = append(capsules, gs.capsules[:i]...)
		gs.capsules = append(capsules, gs.capsules[i+1:]...)
		for j := range gs.ghosts {
			gs.ghosts[j].scared = ScaredTime
		}
	}
}

// eatFood copies only the eaten column so earlier states keep theirs.
func (gs *GameState) eatFood(p Position) {
	food := make([][]bool, len(gs.food))
	copy(food, gs.food)
	column := make([]bool, len(gs.food[p.X]))
	copy(column, gs.food[p.X])
	column[p.Y] = false
	food[p.X] = column
	gs.food = food
	gs.foodLeft--
}

func (gs *GameState) moveGhost(i int, action Action) {
	g := &gs.ghosts[i]
	v := vectors[action]
	g.position = g.position.Add(v.X, v.Y)
	g.heading = action
	if g.scared > 0 {
		g.scared--
	}
}

func (gs *GameState) checkCollisions() {
	for i := range gs.ghosts {
		g := &gs.ghosts[i]
		if g.position != gs.pacman {
			continue
		}
		if g.scared > 0 {
			gs.score += GhostScore
			g.position = g.start
			g.heading = Stop
			g.scared = 0
		} else if !gs.win {
			gs.score -= LosePenalty
			gs.lose = true
		}
	}
}
