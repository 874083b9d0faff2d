package metrics

import (
	"sync/atomic"
	"time"

	"checkers/game"
)

type SearchMetric struct {
	Algorithm    string
	Duration     time.Duration
	Iterations   int // Iteration budget (MCTS) or depth (minimax, alpha-beta)
	Episodes     int // Completed select/expand/simulate/backup loops
	FullPlayouts int // Rollouts that reached a terminal state before the horizon
	Nodes        int // Tree size once the search completed
	IsTreeReset  bool
}

type MoveMetric struct {
	Step   int
	Player game.Player
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player // NoPlayer when the game hit the turn limit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(algorithm string, iterations int)
	SetTreeReset(value bool)
	SetNodes(nodes int)
	AddFullPlayout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	algorithm    string
	iterations   int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	nodes        atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string, iterations int) {
	m.algorithm = algorithm
	m.iterations = iterations
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

func (m *collector) SetNodes(nodes int) {
	m.nodes.Store(int32(nodes))
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm:    m.algorithm,
		Duration:     time.Since(m.startTime),
		Iterations:   m.iterations,
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Nodes:        int(m.nodes.Load()),
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, iterations int) {}
func (m *dummyCollector) SetTreeReset(value bool)                {}
func (m *dummyCollector) SetNodes(nodes int)                     {}
func (m *dummyCollector) AddFullPlayout()                        {}
func (m *dummyCollector) AddEpisode()                            {}
func (m *dummyCollector) Complete() SearchMetric                 { return SearchMetric{} }
