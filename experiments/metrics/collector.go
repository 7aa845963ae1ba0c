package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration   time.Duration
	Nodes      int // Positions expanded
	Terminals  int // Finished positions reached
	Branches   int // Terminal lines recorded in the branch statistics
	Pit        int
	Guaranteed bool
}

type MoveMetric struct {
	Step   int
	Player int // Player index
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int    // Player index
	Winner         string // Outcome, "" if the game hit the turn limit
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Bank0          int
	Bank1          int
}

type Collector interface {
	Start()
	AddNode()
	AddTerminal()
	Complete(pit int, guaranteed bool, branches int) SearchMetric
}

type collector struct {
	startTime time.Time
	nodes     atomic.Int64
	terminals atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.terminals.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) Complete(pit int, guaranteed bool, branches int) SearchMetric {
	return SearchMetric{
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Terminals:  int(m.terminals.Load()),
		Branches:   branches,
		Pit:        pit,
		Guaranteed: guaranteed,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()       {}
func (m *dummyCollector) AddNode()     {}
func (m *dummyCollector) AddTerminal() {}
func (m *dummyCollector) Complete(pit int, guaranteed bool, branches int) SearchMetric {
	return SearchMetric{Pit: pit, Guaranteed: guaranteed}
}
