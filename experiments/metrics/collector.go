package metrics

import (
	"time"

	"tablut/game"
)

type SearchMetric struct {
	Depth    int
	Pruning  bool
	Duration time.Duration
	Nodes    int // positions visited, the root included
	Leaves   int // positions scored by the evaluator
	Cutoffs  int
	MaxPly   int
	Score    int
}

type MoveMetric struct {
	Step int
	Side game.Side
	Move game.Move
	SearchMetric
}

type GameMetric struct {
	Winner     game.Side // NoSide on a draw
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector gathers statistics of a single search. Searches are sequential,
// so implementations need no synchronisation.
type Collector interface {
	Start(depth int, pruning bool)
	AddNode(ply int)
	AddLeaf()
	AddCutoff()
	Complete(score int) SearchMetric
}

type collector struct {
	depth     int
	pruning   bool
	startTime time.Time
	nodes     int
	leaves    int
	cutoffs   int
	maxPly    int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int, pruning bool) {
	*m = collector{depth: depth, pruning: pruning, startTime: time.Now()}
}

func (m *collector) AddNode(ply int) {
	m.nodes++
	m.maxPly = max(m.maxPly, ply)
}

func (m *collector) AddLeaf() {
	m.leaves++
}

func (m *collector) AddCutoff() {
	m.cutoffs++
}

func (m *collector) Complete(score int) SearchMetric {
	return SearchMetric{
		Depth:    m.depth,
		Pruning:  m.pruning,
		Duration: time.Since(m.startTime),
		Nodes:    m.nodes,
		Leaves:   m.leaves,
		Cutoffs:  m.cutoffs,
		MaxPly:   m.maxPly,
		Score:    score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, pruning bool)   {}
func (m *dummyCollector) AddNode(ply int)                 {}
func (m *dummyCollector) AddLeaf()                        {}
func (m *dummyCollector) AddCutoff()                      {}
func (m *dummyCollector) Complete(score int) SearchMetric { return SearchMetric{} }
