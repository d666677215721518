package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"time"

	"multiagent/agent"
	"multiagent/experiments"
	"multiagent/game"
	"multiagent/meta"
	"multiagent/searcher"
	"multiagent/utils"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	// Values from .env only fill in variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("failed to load .env")
	}

	layout := flag.String("layout", env("MULTIAGENT_LAYOUT", meta.DEFAULT_LAYOUT), "Built-in layout name or layout file")
	kind := flag.String("agent", env("MULTIAGENT_AGENT", string(searcher.AlphaBetaKind)), "minimax, alphabeta, expectimax or reflex")
	depth := flag.Int("depth", envInt("MULTIAGENT_DEPTH", meta.DEFAULT_DEPTH), "Search depth in rounds")
	evaluation := flag.String("eval", env("MULTIAGENT_EVAL", meta.DEFAULT_EVALUATION), "Evaluation function")
	games := flag.Int("games", envInt("MULTIAGENT_GAMES", 1), "Number of games to play")
	ghosts := flag.Int("ghosts", 0, "Number of ghosts, 0 for all of the layout's")
	goroutines := flag.Int("goroutines", envInt("MULTIAGENT_GOROUTINES", meta.GO_ROUTINES), "Root actions searched concurrently")
	timeout := flag.Duration("timeout", 0, "Time limit per move, 0 for none")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for ghosts and reflex tie-breaks")
	suite := flag.String("suite", "", "Experiment suite file; overrides the single game flags")
	out := flag.String("out", env("MULTIAGENT_OUTPUT", meta.OUTPUT_DIR), "Directory for experiment results")
	level := flag.String("log-level", env("MULTIAGENT_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	flag.Parse()

	l, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(l)

	if *suite != "" {
		runSuite(*suite, *out)
		return
	}

	q := experiments.Question{
		Name:   "play",
		Layout: *layout,
		Agent: agent.Config{
			Kind:       searcher.Kind(*kind),
			Depth:      *depth,
			Evaluation: *evaluation,
			Goroutines: *goroutines,
			Timeout:    *timeout,
			Seed:       *seed,
		},
		Ghosts: *ghosts,
		Games:  *games,
		Seed:   *seed,
	}
	if q.Agent.Kind == agent.ReflexKind {
		q.Agent.Depth, q.Agent.Evaluation, q.Agent.Goroutines = 0, "", 0
	}
	if _, err := game.LookupLayout(q.Layout); err != nil {
		log.Fatal().Err(err).Msg("invalid layout")
	}
	if _, err := agent.New(q.Agent); err != nil {
		log.Fatal().Err(err).Msgf("choose -eval from %v", game.EvaluationNames())
	}

	scores := []float64{}
	wins := 0
	for i := 0; i < q.Games; i++ {
		win, gameMetric, _, err := experiments.PlayGame(q, i)
		if err != nil {
			log.Fatal().Err(err).Msgf("game %d failed", i+1)
		}
		scores = append(scores, gameMetric.Score)
		if win {
			wins++
		}
	}
	if len(scores) > 0 {
		log.Info().Msgf("average score %.1f, won %d of %d", utils.Mean(scores), wins, len(scores))
	}
}

func runSuite(path, out string) {
	s, err := experiments.LoadSuite(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load suite")
	}
	grades, dir, err := experiments.Run(s, out)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store results")
	}
	total := 0
	for _, g := range grades {
		total += g.Points
	}
	log.Info().Msgf("total %d points, results in %s", total, dir)
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid %s", key)
	}
	return n
}
