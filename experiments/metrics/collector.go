package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Algorithm   string
	Depth       int
	Goroutines  int
	Duration    time.Duration
	Nodes       int // Calls of the recursive value function, root children included
	Evaluations int // Calls of the evaluation function
}

type MoveMetric struct {
	Step   int
	Agent  int // Agent index
	Action string
	SearchMetric
}

type GameMetric struct {
	Layout     string
	Win        bool
	Score      float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector counts the work done by a single search. Counters are atomic so
// root actions searched on separate goroutines can share one collector.
type Collector interface {
	Start(algorithm string, depth, goroutines int)
	AddNode()
	AddEvaluation()
	Complete() SearchMetric
}

type collector struct {
	algorithm   string
	depth       int
	goroutines  int
	startTime   time.Time
	nodes       atomic.Int64
	evaluations atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string, depth, goroutines int) {
	m.startTime = time.Now()
	m.algorithm = algorithm
	m.depth = depth
	m.goroutines = goroutines
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:   m.algorithm,
		Depth:       m.depth,
		Goroutines:  m.goroutines,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
	}
}
