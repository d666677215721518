package experiments

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"multiagent/agent"
	"multiagent/experiments/metrics"
	"multiagent/searcher"

	"github.com/stretchr/testify/require"
)

// writeLayout stores a layout where pacman wins by stepping west.
func writeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oneStep.lay")
	err := os.WriteFile(path, []byte("%%%%%%%\n%.P  G%\n%%%%%%%\n"), 0644)
	require.NoError(t, err)
	return path
}

func TestParseSuite(t *testing.T) {
	t.Run("decodes questions and agent configurations", func(t *testing.T) {
		s, err := ParseSuite([]byte(`
name: search
questions:
  - name: q2
    layout: minimaxClassic
    agent:
      kind: alphabeta
      depth: 3
      evaluation: better
      goroutines: 2
      timeout: 250ms
    ghosts: 2
    games: 4
    minAverageScore: 100.5
    minWins: 3
    points: 5
    seed: 9
`))

		require.NoError(t, err)
		require.Equal(t, "search", s.Name)
		require.Len(t, s.Questions, 1)
		q := s.Questions[0]
		require.Equal(t, agent.Config{
			Kind:       searcher.AlphaBetaKind,
			Depth:      3,
			Evaluation: "better",
			Goroutines: 2,
			Timeout:    250 * time.Millisecond,
		}, q.Agent)
		require.Equal(t, 2, q.Ghosts)
		require.Equal(t, 4, q.Games)
		require.NotNil(t, q.MinAverageScore)
		require.Equal(t, 100.5, *q.MinAverageScore)
		require.Equal(t, 3, q.MinWins)
		require.Equal(t, 5, q.Points)
		require.Equal(t, uint64(9), q.Seed)
	})

	t.Run("rejects suites that cannot run", func(t *testing.T) {
		testCases := map[string]string{
			"malformed":          "name: [",
			"missing name":       "questions: [{name: q, layout: minimaxClassic, agent: {kind: minimax}, games: 1}]",
			"no questions":       "name: s",
			"unnamed question":   "name: s\nquestions: [{layout: minimaxClassic, agent: {kind: minimax}, games: 1}]",
			"duplicate question": "name: s\nquestions: [{name: q, layout: minimaxClassic, agent: {kind: minimax}, games: 1}, {name: q, layout: minimaxClassic, agent: {kind: minimax}, games: 1}]",
			"no games":           "name: s\nquestions: [{name: q, layout: minimaxClassic, agent: {kind: minimax}}]",
			"negative wins":      "name: s\nquestions: [{name: q, layout: minimaxClassic, agent: {kind: minimax}, games: 1, minWins: -1}]",
			"unknown layout":     "name: s\nquestions: [{name: q, layout: nowhere, agent: {kind: minimax}, games: 1}]",
			"unknown algorithm":  "name: s\nquestions: [{name: q, layout: minimaxClassic, agent: {kind: mcts}, games: 1}]",
		}
		for name, data := range testCases {
			_, err := ParseSuite([]byte(data))
			require.ErrorIs(t, err, ErrInvalidSuite, name)
		}
	})

	t.Run("reports the agent configuration error", func(t *testing.T) {
		_, err := ParseSuite([]byte("name: s\nquestions: [{name: q, layout: minimaxClassic, agent: {kind: minimax, evaluation: nope}, games: 1}]"))
		require.ErrorIs(t, err, agent.ErrConfiguration)
	})

	t.Run("defaults only a missing depth", func(t *testing.T) {
		s, err := ParseSuite([]byte("name: s\nquestions: [{name: q, layout: minimaxClassic, agent: {kind: minimax}, games: 1}]"))
		require.NoError(t, err)
		require.Equal(t, 2, s.Questions[0].Agent.Depth)

		_, err = ParseSuite([]byte("name: s\nquestions: [{name: q, layout: minimaxClassic, agent: {kind: minimax, depth: 0}, games: 1}]"))
		require.ErrorIs(t, err, ErrInvalidSuite)
		require.ErrorIs(t, err, searcher.ErrInvalidDepth)
	})

	t.Run("rejects search settings on a reflex agent", func(t *testing.T) {
		_, err := ParseSuite([]byte("name: s\nquestions: [{name: q, layout: minimaxClassic, agent: {kind: reflex, evaluation: nope, depth: -3}, games: 1}]"))
		require.ErrorIs(t, err, ErrInvalidSuite)
		require.ErrorIs(t, err, agent.ErrConfiguration)
	})

	t.Run("loads a suite file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "suite.yaml")
		err := os.WriteFile(path, []byte("name: s\nquestions: [{name: q, layout: testClassic, agent: {kind: expectimax}, games: 1}]"), 0644)
		require.NoError(t, err)

		s, err := LoadSuite(path)

		require.NoError(t, err)
		require.Equal(t, searcher.ExpectimaxKind, s.Questions[0].Agent.Kind)

		_, err = LoadSuite(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestGrade(t *testing.T) {
	minScore := 100.0
	q := Question{Name: "q", Games: 2, MinWins: 1, MinAverageScore: &minScore, Points: 4}

	t.Run("full points when every threshold holds", func(t *testing.T) {
		g := grade(q, []float64{150, 90}, 1, nil)

		require.Equal(t, metrics.GradeRecord{
			Question:     "q",
			Points:       4,
			MaxPoints:    4,
			Games:        2,
			Wins:         1,
			AverageScore: 120,
		}, g)
	})

	t.Run("no points when too few games are won", func(t *testing.T) {
		g := grade(q, []float64{150, 90}, 0, nil)

		require.Zero(t, g.Points)
		require.Equal(t, []string{"won 0 of 2 games, needed 1"}, g.Messages)
	})

	t.Run("no points when the average score is too low", func(t *testing.T) {
		g := grade(q, []float64{50, 90}, 2, nil)

		require.Zero(t, g.Points)
		require.Len(t, g.Messages, 1)
	})

	t.Run("no points when a game failed", func(t *testing.T) {
		g := grade(Question{Name: "q", Games: 2, Points: 4}, []float64{10}, 1, errors.New("game 2: timed out"))

		require.Zero(t, g.Points)
		require.Equal(t, 1, g.Games)
		require.Equal(t, []string{"game 2: timed out"}, g.Messages)
	})

	t.Run("thresholds are optional", func(t *testing.T) {
		g := grade(Question{Name: "q", Games: 1, Points: 2}, []float64{-500}, 0, nil)

		require.Equal(t, 2, g.Points)
	})
}

func TestRun(t *testing.T) {
	t.Run("plays every game and stores the run", func(t *testing.T) {
		layout := writeLayout(t)
		out := t.TempDir()
		s := &Suite{
			Name: "smoke",
			Questions: []Question{
				{Name: "search", Layout: layout, Agent: agent.Config{Kind: searcher.AlphaBetaKind, Depth: 2}, Games: 3, MinWins: 3, Points: 2},
				{Name: "reflex", Layout: layout, Agent: agent.Config{Kind: agent.ReflexKind}, Games: 2, MinWins: 3, Points: 1},
			},
		}

		grades, dir, err := Run(s, out)

		require.NoError(t, err)
		require.Len(t, grades, 2)
		require.Equal(t, 2, grades[0].Points)
		require.Equal(t, 3, grades[0].Wins)
		require.Equal(t, 509.0, grades[0].AverageScore)
		require.Zero(t, grades[1].Points, "Two games cannot reach three wins")
		require.Equal(t, 2, grades[1].Wins)

		rel, err := filepath.Rel(out, dir)
		require.NoError(t, err)
		require.Equal(t, "smoke", filepath.Dir(rel), "Runs should be grouped by suite")

		games := readCSV(t, filepath.Join(dir, "game_records.csv"))
		require.Len(t, games, 1+5, "Header plus one row per game")
		require.Equal(t, []string{"1", "search", "1"}, games[1][:3])
		require.Equal(t, []string{"5", "reflex", "2"}, games[5][:3])

		moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
		require.Len(t, moves, 1+5, "Each game should take a single move")

		configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
		require.Len(t, configs, 1+2)

		data, err := os.ReadFile(filepath.Join(dir, "grades.json"))
		require.NoError(t, err)
		var stored []metrics.GradeRecord
		require.NoError(t, json.Unmarshal(data, &stored))
		require.Equal(t, grades, stored)
	})

	t.Run("a failing game costs the question its points", func(t *testing.T) {
		s := &Suite{
			Name: "timeouts",
			Questions: []Question{
				{Name: "slow", Layout: "minimaxClassic", Agent: agent.Config{Kind: searcher.MinimaxKind, Depth: 3, Timeout: time.Nanosecond}, Games: 2, Points: 3},
			},
		}

		grades, _, err := Run(s, t.TempDir())

		require.NoError(t, err)
		require.Zero(t, grades[0].Points)
		require.Zero(t, grades[0].Games)
		require.Len(t, grades[0].Messages, 1)
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
