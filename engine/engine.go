package engine

import "multiagent/experiments/metrics"

type Engine interface {
	// Run plays a game until pacman wins or loses or the move cap is reached.
	// The final score is in the returned GameMetric.
	Run() (win bool, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
