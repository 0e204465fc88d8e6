package metrics

import (
	"sync/atomic"
	"time"

	"pursuit/game"
)

type SearchMetric struct {
	Agent    int
	Depth    int
	Duration time.Duration
	Nodes    int
	TimedOut bool
}

type MoveMetric struct {
	Step   int
	Action game.Direction
	SearchMetric
}

type GameMetric struct {
	Layout       string
	Pursuers     int
	Seed         uint64
	Scores       []float64
	PrimaryDied  bool
	RivalDied    bool
	PursuersLose bool
	PrimaryWins  bool
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
	Timeouts     int
}

// Collector gathers the metrics of one search at a time.
type Collector interface {
	Start(agent, depth int)
	AddNode()
	Complete() SearchMetric
}

type collector struct {
	agent     int
	depth     int
	startTime time.Time
	nodes     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(agent, depth int) {
	m.startTime = time.Now()
	m.agent = agent
	m.depth = depth
	m.nodes.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Agent:    m.agent,
		Depth:    m.depth,
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(agent, depth int)  {}
func (m *dummyCollector) AddNode()                {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
