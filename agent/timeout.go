package agent

import (
	"errors"
	"fmt"
	"time"

	"multiagent/experiments/metrics"
	"multiagent/game"

	"github.com/rs/zerolog/log"
)

var ErrTimeout = errors.New("agent exceeded its time limit")

type timed struct {
	agent   Agent
	timeout time.Duration
}

// WithTimeout limits each GetAction call of a to d. A late decision is
// discarded: the caller gets ErrTimeout and no action. The abandoned search
// runs to completion in the background.
func WithTimeout(a Agent, d time.Duration) Agent {
	return timed{agent: a, timeout: d}
}

type decision struct {
	action game.Action
	metric metrics.SearchMetric
	err    error
}

func (t timed) GetAction(state game.State) (game.Action, metrics.SearchMetric, error) {
	done := make(chan decision, 1)
	go func() {
		action, metric, err := t.agent.GetAction(state)
		done <- decision{action: action, metric: metric, err: err}
	}()

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()
	select {
	case d := <-done:
		return d.action, d.metric, d.err
	case <-timer.C:
		log.Warn().Dur("timeout", t.timeout).Msg("agent timed out")
		return "", metrics.SearchMetric{}, fmt.Errorf("%w after %s", ErrTimeout, t.timeout)
	}
}
