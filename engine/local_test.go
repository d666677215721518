package engine

import (
	"errors"
	"testing"

	"multiagent/agent"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/searcher"

	"github.com/stretchr/testify/require"
)

// fixed always plays the same action.
type fixed struct {
	action game.Action
	err    error
}

func (f fixed) GetAction(state game.State) (game.Action, metrics.SearchMetric, error) {
	return f.action, metrics.SearchMetric{}, f.err
}

func newState(t *testing.T, text string) *game.GameState {
	t.Helper()
	l, err := game.ParseLayout(t.Name(), text)
	require.NoError(t, err)
	return game.NewGameState(l)
}

func TestLocalRun(t *testing.T) {
	t.Run("a search agent takes the last food and wins", func(t *testing.T) {
		state := newState(t, `
%%%%%%%
%.P  G%
%%%%%%%
`)
		pacman, err := agent.New(agent.Config{Kind: searcher.AlphaBetaKind, Depth: 2})
		require.NoError(t, err)
		e := NewLocal(state, []agent.Agent{pacman, agent.NewRandomGhost(1, 1)})

		win, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.True(t, win)
		require.Equal(t, 509.0, gameMetric.Score, "One move, one food and the win bonus")
		require.Equal(t, 1, gameMetric.TotalMoves, "Ghosts should not move after the game ends")
		require.Len(t, moveMetrics, 1)
		require.Equal(t, metrics.MoveMetric{
			Step:         1,
			Agent:        0,
			Action:       string(game.West),
			SearchMetric: moveMetrics[0].SearchMetric,
		}, moveMetrics[0])
		require.Equal(t, string(searcher.AlphaBetaKind), moveMetrics[0].Algorithm)
		require.Equal(t, t.Name(), gameMetric.Layout)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
	})

	t.Run("walking into a ghost loses", func(t *testing.T) {
		state := newState(t, `
%%%%%%
%PG .%
%%%%%%
`)
		e := NewLocal(state, []agent.Agent{fixed{action: game.East}, fixed{action: game.West}})

		win, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.False(t, win)
		require.True(t, e.State.IsLose())
		require.Equal(t, -501.0, gameMetric.Score)
		require.Len(t, moveMetrics, 1)
	})

	t.Run("stops at the move cap", func(t *testing.T) {
		state := newState(t, `
%%%%%%
%P.%G%
%%%%%%
`)
		e := NewLocal(state, []agent.Agent{fixed{action: game.Stop}, agent.NewRandomGhost(1, 1)})
		e.MaxMoves = 10

		win, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.False(t, win)
		require.False(t, e.State.IsTerminal())
		require.Equal(t, 10, gameMetric.TotalMoves)
		require.Equal(t, -5.0, gameMetric.Score, "Each of pacman's 5 moves should cost a point")
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.Equal(t, i%2, mm.Agent, "Agents should move in index order")
		}
	})

	t.Run("agent errors end the game", func(t *testing.T) {
		state := newState(t, `
%%%%%%
%P.%G%
%%%%%%
`)
		failure := errors.New("no decision")
		e := NewLocal(state, []agent.Agent{fixed{action: game.Stop}, fixed{err: failure}})

		_, _, moveMetrics, err := e.Run()

		require.ErrorIs(t, err, failure)
		require.Len(t, moveMetrics, 1, "Moves made before the failure should be kept")
	})

	t.Run("illegal actions end the game", func(t *testing.T) {
		state := newState(t, `
%%%%%%
%P.%G%
%%%%%%
`)
		e := NewLocal(state, []agent.Agent{fixed{action: game.North}, fixed{action: game.Stop}})

		_, _, _, err := e.Run()

		require.ErrorIs(t, err, game.ErrInvalidAction)
	})

	t.Run("panics when agents do not match the layout", func(t *testing.T) {
		state := newState(t, `
%%%%%%
%P.%G%
%%%%%%
`)
		require.Panics(t, func() { NewLocal(state, []agent.Agent{fixed{}}) })
	})
}
