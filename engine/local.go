package engine

import (
	"fmt"
	"time"

	"multiagent/agent"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/meta"

	"github.com/rs/zerolog/log"
)

var _ Engine = (*Local)(nil)

// Local plays every agent in-process, agent i moving for game agent i.
type Local struct {
	State    *game.GameState
	Agents   []agent.Agent
	MaxMoves int // Agent moves, not rounds
}

func NewLocal(state *game.GameState, agents []agent.Agent) *Local {
	if len(agents) != state.AgentCount() {
		panic("number of agents does not match the layout")
	}
	return &Local{
		State:    state,
		Agents:   agents,
		MaxMoves: meta.MAX_MOVES,
	}
}

func (e *Local) Run() (bool, metrics.GameMetric, []metrics.MoveMetric, error) {
	layout := e.State.Layout().Name
	start := time.Now()
	log.Info().Msgf("starting game on %s with %d agents", layout, len(e.Agents))

	var moveMetrics []metrics.MoveMetric
	step := 0
	for !e.State.IsTerminal() && step < e.MaxMoves {
		i := step % len(e.Agents)
		step++

		action, metric, err := e.Agents[i].GetAction(e.State)
		if err != nil {
			return false, metrics.GameMetric{}, moveMetrics, fmt.Errorf("agent %d at move %d: %w", i, step, err)
		}
		next, err := e.State.Successor(i, action)
		if err != nil {
			return false, metrics.GameMetric{}, moveMetrics, fmt.Errorf("agent %d at move %d: %w", i, step, err)
		}
		e.State = next.(*game.GameState)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Agent:        i,
			Action:       string(action),
			SearchMetric: metric,
		})
		log.Debug().Int("step", step).Int("agent", i).Str("action", string(action)).Float64("score", e.State.Score()).Msg("move")
	}

	end := time.Now()
	gameMetric := metrics.GameMetric{
		Layout:     layout,
		Win:        e.State.IsWin(),
		Score:      e.State.Score(),
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		TotalMoves: step,
	}

	switch {
	case e.State.IsWin():
		log.Info().Msgf("pacman won on %s with score %.0f after %d moves", layout, gameMetric.Score, step)
	case e.State.IsLose():
		log.Info().Msgf("pacman lost on %s with score %.0f after %d moves", layout, gameMetric.Score, step)
	default:
		log.Warn().Msgf("stopped %s after %d moves with score %.0f", layout, step, gameMetric.Score)
	}
	return gameMetric.Win, gameMetric, moveMetrics, nil
}
