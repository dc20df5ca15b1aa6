package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric is a snapshot of the work done by one engine instance.
type SearchMetric struct {
	Duration     time.Duration
	Rollouts     int
	Expansions   int
	PlayoutSteps int
}

// Collector accumulates search statistics across rollouts. The engine uses
// a dummy collector unless constructed with WithMetrics.
type Collector interface {
	Start()
	AddRollout()
	AddExpansion()
	AddPlayout(steps int)
	Snapshot() SearchMetric
}

type collector struct {
	startTime    time.Time
	rollouts     atomic.Int32
	expansions   atomic.Int32
	playoutSteps atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
}

func (c *collector) AddRollout() {
	c.rollouts.Add(1)
}

func (c *collector) AddExpansion() {
	c.expansions.Add(1)
}

func (c *collector) AddPlayout(steps int) {
	c.playoutSteps.Add(int32(steps))
}

func (c *collector) Snapshot() SearchMetric {
	return SearchMetric{
		Duration:     time.Since(c.startTime),
		Rollouts:     int(c.rollouts.Load()),
		Expansions:   int(c.expansions.Load()),
		PlayoutSteps: int(c.playoutSteps.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start()                 {}
func (dummyCollector) AddRollout()            {}
func (dummyCollector) AddExpansion()          {}
func (dummyCollector) AddPlayout(int)         {}
func (dummyCollector) Snapshot() SearchMetric { return SearchMetric{} }
