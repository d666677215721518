package agent

import (
	"errors"
	"fmt"
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"
	"multiagent/meta"
	"multiagent/searcher"

	"gopkg.in/yaml.v3"
)

// ReflexKind selects the one-step reflex agent instead of a searcher.
const ReflexKind searcher.Kind = "reflex"

var (
	ErrConfiguration = errors.New("invalid agent configuration")
	ErrNoActions     = errors.New("no legal actions")
)

type Agent interface {
	// GetAction returns the agent's move in state and the metrics of the
	// search behind it, if any.
	GetAction(state game.State) (game.Action, metrics.SearchMetric, error)
}

type Config struct {
	Kind       searcher.Kind `yaml:"kind"`
	Depth      int           `yaml:"depth"`      // Rounds; meta.DEFAULT_DEPTH when omitted from YAML
	Evaluation string        `yaml:"evaluation"` // Empty means meta.DEFAULT_EVALUATION
	Goroutines int           `yaml:"goroutines"`
	Timeout    time.Duration `yaml:"timeout"` // Zero disables the deadline
	Seed       uint64        `yaml:"seed"`    // Reflex tie-breaking
}

// New builds the agent described by config. Every failure wraps
// ErrConfiguration along with the underlying cause.
func New(config Config) (Agent, error) {
	if config.Timeout < 0 {
		return nil, fmt.Errorf("%w: negative timeout %s", ErrConfiguration, config.Timeout)
	}

	var a Agent
	if config.Kind == ReflexKind {
		// Reflex agents look one step ahead with their own heuristic
		if config.Depth != 0 || config.Evaluation != "" || config.Goroutines != 0 {
			return nil, fmt.Errorf("%w: reflex agents take no depth, evaluation or goroutines", ErrConfiguration)
		}
		a = NewReflex(config.Seed)
	} else {
		name := config.Evaluation
		if name == "" {
			name = meta.DEFAULT_EVALUATION
		}
		evaluate, err := game.LookupEvaluation(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		goroutines := config.Goroutines
		if goroutines == 0 {
			goroutines = meta.GO_ROUTINES
		}
		s, err := searcher.New(config.Kind, config.Depth, evaluate, searcher.WithGoroutines(goroutines))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		a = NewSearchAgent(s)
	}

	if config.Timeout > 0 {
		a = WithTimeout(a, config.Timeout)
	}
	return a, nil
}

// UnmarshalYAML fills in meta.DEFAULT_DEPTH when a search agent's depth is
// omitted. A depth that is present is kept as written, zero included.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	p := plain(*c)
	if err := value.Decode(&p); err != nil {
		return err
	}
	var present struct {
		Depth *int `yaml:"depth"`
	}
	if err := value.Decode(&present); err != nil {
		return err
	}
	if present.Depth == nil && p.Kind != ReflexKind {
		p.Depth = meta.DEFAULT_DEPTH
	}
	*c = Config(p)
	return nil
}

type searchAgent struct {
	searcher searcher.Searcher
}

// NewSearchAgent plays agent 0 with the action chosen by s.
func NewSearchAgent(s searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) GetAction(state game.State) (game.Action, metrics.SearchMetric, error) {
	result, err := a.searcher.Search(state)
	if err != nil {
		return "", metrics.SearchMetric{}, err
	}
	return result.Action, result.Metric, nil
}
