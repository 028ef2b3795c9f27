package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/pyide/internal/dispatcher/handler"
)

// Metrics counts what happened during a session. It is logged at shutdown.
type Metrics struct {
	actions atomic.Uint64
	errors  atomic.Uint64

	runs       atomic.Uint64
	runTotalNs atomic.Int64

	renders       atomic.Uint64
	renderTotalNs atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordAction counts a dispatched action and its outcome.
func (m *Metrics) RecordAction(r handler.Result) {
	m.actions.Add(1)
	if r.IsError() {
		m.errors.Add(1)
	}
}

// RecordRun counts a completed run.
func (m *Metrics) RecordRun(d time.Duration) {
	m.runs.Add(1)
	m.runTotalNs.Add(d.Nanoseconds())
}

// RecordRender counts a drawn frame.
func (m *Metrics) RecordRender(d time.Duration) {
	m.renders.Add(1)
	m.renderTotalNs.Add(d.Nanoseconds())
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Actions   uint64
	Errors    uint64
	Runs      uint64
	RunTime   time.Duration
	Renders   uint64
	RenderAvg time.Duration
	Uptime    time.Duration
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Actions: m.actions.Load(),
		Errors:  m.errors.Load(),
		Runs:    m.runs.Load(),
		RunTime: time.Duration(m.runTotalNs.Load()),
		Renders: m.renders.Load(),
		Uptime:  time.Since(m.startTime),
	}
	if s.Renders > 0 {
		s.RenderAvg = time.Duration(m.renderTotalNs.Load() / int64(s.Renders))
	}
	return s
}
