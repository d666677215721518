package experiments

import (
	"fmt"

	"multiagent/agent"
	"multiagent/engine"
	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Run plays every question of s, writes the run's records under
// <outDir>/<suite name>/<timestamp>-<run id> and returns the grades along
// with that directory. A failed game costs its question the points but does
// not stop the suite.
func Run(s *Suite, outDir string) ([]metrics.GradeRecord, string, error) {
	runID := uuid.NewString()
	count := 0
	configs := []metrics.AgentRecord{}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	grades := []metrics.GradeRecord{}

	log.Info().Str("run", runID).Msgf("starting %s suite...", s.Name)

	for qi, q := range s.Questions {
		agentID := qi + 1
		configs = append(configs, metrics.AgentRecord{
			ID:         agentID,
			Question:   q.Name,
			Kind:       string(q.Agent.Kind),
			Depth:      q.Agent.Depth,
			Evaluation: q.Agent.Evaluation,
			Goroutines: q.Agent.Goroutines,
			Timeout:    q.Agent.Timeout,
		})

		log.Info().Msgf("starting question %s (%d of %d) with agent=%+v...", q.Name, qi+1, len(s.Questions), q.Agent)

		var scores []float64
		wins := 0
		var failure error
		for i := 0; i < q.Games; i++ {
			log.Info().Msgf("starting question %s game %d of %d...", q.Name, i+1, q.Games)

			win, gameMetric, moveMetrics, err := PlayGame(q, i)
			if err != nil {
				failure = fmt.Errorf("game %d: %w", i+1, err)
				log.Warn().Err(err).Msgf("question %s game %d failed", q.Name, i+1)
				break
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Question:   q.Name,
				Agent:      agentID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			scores = append(scores, gameMetric.Score)
			if win {
				wins++
			}

			log.Info().Msgf("completed question %s game %d with win=%t score=%.0f", q.Name, i+1, win, gameMetric.Score)
		}

		g := grade(q, scores, wins, failure)
		grades = append(grades, g)
		log.Info().Msgf("*** %s: %d/%d points", q.Name, g.Points, g.MaxPoints)
	}

	total, maxPoints := 0, 0
	for _, g := range grades {
		total += g.Points
		maxPoints += g.MaxPoints
	}
	log.Info().Msgf("completed %s suite: %d/%d points", s.Name, total, maxPoints)

	writer, err := metrics.NewWriter(outDir, s.Name, runID)
	if err != nil {
		return grades, "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return grades, writer.Dir(), fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return grades, writer.Dir(), fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return grades, writer.Dir(), fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteGrades(grades); err != nil {
		return grades, writer.Dir(), err
	}
	log.Info().Msgf("stored results in %s", writer.Dir())

	return grades, writer.Dir(), nil
}

// PlayGame plays game i of q: the configured pacman against random ghosts.
// Agent and ghost seeds are offset by i so games differ.
func PlayGame(q Question, i int) (bool, metrics.GameMetric, []metrics.MoveMetric, error) {
	layout, err := game.LookupLayout(q.Layout)
	if err != nil {
		return false, metrics.GameMetric{}, nil, err
	}
	if q.Ghosts > 0 {
		layout = layout.WithGhosts(q.Ghosts)
	}
	state := game.NewGameState(layout)

	config := q.Agent
	config.Seed += uint64(i)
	pacman, err := agent.New(config)
	if err != nil {
		return false, metrics.GameMetric{}, nil, err
	}
	agents := []agent.Agent{pacman}
	for g := 1; g < state.AgentCount(); g++ {
		seed := q.Seed + uint64(i*state.AgentCount()+g)
		agents = append(agents, agent.NewRandomGhost(g, seed))
	}

	e := engine.NewLocal(state, agents)
	if q.MaxMoves > 0 {
		e.MaxMoves = q.MaxMoves
	}
	return e.Run()
}

// grade awards all of q's points if every game finished and both thresholds
// hold, and none otherwise.
func grade(q Question, scores []float64, wins int, failure error) metrics.GradeRecord {
	g := metrics.GradeRecord{
		Question:  q.Name,
		MaxPoints: q.Points,
		Games:     len(scores),
		Wins:      wins,
	}
	if len(scores) > 0 {
		g.AverageScore = utils.Mean(scores)
	}

	pass := true
	if failure != nil {
		pass = false
		g.Messages = append(g.Messages, failure.Error())
	}
	if wins < q.MinWins {
		pass = false
		g.Messages = append(g.Messages, fmt.Sprintf("won %d of %d games, needed %d", wins, q.Games, q.MinWins))
	}
	if q.MinAverageScore != nil && (len(scores) == 0 || g.AverageScore < *q.MinAverageScore) {
		pass = false
		g.Messages = append(g.Messages, fmt.Sprintf("average score %.2f is below %.2f", g.AverageScore, *q.MinAverageScore))
	}
	if pass {
		g.Points = q.Points
	}
	return g
}
