package experiments

import (
	"errors"
	"fmt"
	"os"

	"multiagent/agent"
	"multiagent/game"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSuite = errors.New("invalid experiment suite")

// Suite is a named list of graded questions, read from YAML:
//
//	name: minimax
//	questions:
//	  - name: q2
//	    layout: minimaxClassic
//	    agent: {kind: minimax, depth: 2}
//	    games: 5
//	    minWins: 3
//	    points: 5
type Suite struct {
	Name      string     `yaml:"name"`
	Questions []Question `yaml:"questions"`
}

// Question plays Games games of Layout with the configured pacman agent
// against random ghosts. It earns Points if both thresholds hold.
type Question struct {
	Name            string       `yaml:"name"`
	Layout          string       `yaml:"layout"`
	Agent           agent.Config `yaml:"agent"`
	Ghosts          int          `yaml:"ghosts"` // Zero keeps every ghost of the layout
	Games           int          `yaml:"games"`
	MinAverageScore *float64     `yaml:"minAverageScore"`
	MinWins         int          `yaml:"minWins"`
	Points          int          `yaml:"points"`
	Seed            uint64       `yaml:"seed"`     // Ghost moves
	MaxMoves        int          `yaml:"maxMoves"` // Zero means meta.MAX_MOVES
}

func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite: %w", err)
	}
	return ParseSuite(data)
}

// ParseSuite decodes and validates a suite. Layouts and agent configurations
// are resolved here so a bad suite fails before any game is played.
func ParseSuite(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSuite, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidSuite)
	}
	if len(s.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidSuite)
	}

	seen := map[string]bool{}
	for i, q := range s.Questions {
		if q.Name == "" {
			return nil, fmt.Errorf("%w: question %d has no name", ErrInvalidSuite, i+1)
		}
		if seen[q.Name] {
			return nil, fmt.Errorf("%w: duplicate question %s", ErrInvalidSuite, q.Name)
		}
		seen[q.Name] = true
		if q.Games <= 0 {
			return nil, fmt.Errorf("%w: question %s needs at least one game", ErrInvalidSuite, q.Name)
		}
		if q.Ghosts < 0 || q.MinWins < 0 || q.Points < 0 || q.MaxMoves < 0 {
			return nil, fmt.Errorf("%w: question %s has a negative setting", ErrInvalidSuite, q.Name)
		}
		if _, err := game.LookupLayout(q.Layout); err != nil {
			return nil, fmt.Errorf("%w: question %s: %w", ErrInvalidSuite, q.Name, err)
		}
		if _, err := agent.New(q.Agent); err != nil {
			return nil, fmt.Errorf("%w: question %s: %w", ErrInvalidSuite, q.Name, err)
		}
	}
	return &s, nil
}
