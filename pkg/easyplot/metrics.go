package easyplot

import (
	"expvar"
	"sync/atomic"
	"time"
)

// Metrics collects operational counters for plot instances and exposes them
// through expvar, at /debug/vars when an HTTP server serves it.
//
// Thread-safe for concurrent use.
//
// Example usage:
//
//	metrics := easyplot.NewMetrics()
//	metrics.RegisterExpvar()
//	opts := easyplot.Options{Metrics: metrics}
type Metrics struct {
	// Counters
	starts         atomic.Int64
	stops          atomic.Int64
	reloads        atomic.Int64
	reloadFailures atomic.Int64
	renders        atomic.Int64
	luaFailures    atomic.Int64
	errorsTotal    atomic.Int64
	eventsEmitted  atomic.Int64
	snapshots      atomic.Int64

	// Latency tracking (stored as nanoseconds)
	snapshotLatencyNs    atomic.Int64
	snapshotLatencyCount atomic.Int64

	// Current state gauges
	currentlyRunning atomic.Int32
	primitives       atomic.Int32

	registered atomic.Bool
}

// NewMetrics creates a new Metrics instance.
// Call RegisterExpvar() to expose metrics via the /debug/vars endpoint.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RegisterExpvar publishes the metrics under easyplot_* names. expvar names
// are process-global, so register at most one Metrics per process. Repeated
// calls on the same Metrics are no-ops.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) {
		return
	}

	expvar.Publish("easyplot_starts_total", expvar.Func(func() any { return m.starts.Load() }))
	expvar.Publish("easyplot_stops_total", expvar.Func(func() any { return m.stops.Load() }))
	expvar.Publish("easyplot_reloads_total", expvar.Func(func() any { return m.reloads.Load() }))
	expvar.Publish("easyplot_reload_failures_total", expvar.Func(func() any { return m.reloadFailures.Load() }))
	expvar.Publish("easyplot_renders_total", expvar.Func(func() any { return m.renders.Load() }))
	expvar.Publish("easyplot_lua_failures_total", expvar.Func(func() any { return m.luaFailures.Load() }))
	expvar.Publish("easyplot_errors_total", expvar.Func(func() any { return m.errorsTotal.Load() }))
	expvar.Publish("easyplot_events_emitted_total", expvar.Func(func() any { return m.eventsEmitted.Load() }))
	expvar.Publish("easyplot_snapshots_total", expvar.Func(func() any { return m.snapshots.Load() }))

	expvar.Publish("easyplot_running", expvar.Func(func() any { return m.currentlyRunning.Load() }))
	expvar.Publish("easyplot_primitives", expvar.Func(func() any { return m.primitives.Load() }))

	expvar.Publish("easyplot_snapshot_latency_avg_ms", expvar.Func(func() any {
		count := m.snapshotLatencyCount.Load()
		if count == 0 {
			return float64(0)
		}
		return float64(m.snapshotLatencyNs.Load()) / float64(count) / 1e6
	}))
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Starts:         m.starts.Load(),
		Stops:          m.stops.Load(),
		Reloads:        m.reloads.Load(),
		ReloadFailures: m.reloadFailures.Load(),
		Renders:        m.renders.Load(),
		LuaFailures:    m.luaFailures.Load(),
		ErrorsTotal:    m.errorsTotal.Load(),
		EventsEmitted:  m.eventsEmitted.Load(),
		Snapshots:      m.snapshots.Load(),

		Running:    m.currentlyRunning.Load() > 0,
		Primitives: int(m.primitives.Load()),

		SnapshotLatencyAvg: safeDivide(m.snapshotLatencyNs.Load(), m.snapshotLatencyCount.Load()),
	}
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	// Counters
	Starts         int64
	Stops          int64
	Reloads        int64
	ReloadFailures int64
	Renders        int64
	LuaFailures    int64
	ErrorsTotal    int64
	EventsEmitted  int64
	Snapshots      int64

	// Gauges
	Running    bool
	Primitives int

	SnapshotLatencyAvg time.Duration
}

// IncrementStarts records a start operation.
func (m *Metrics) IncrementStarts() { m.starts.Add(1) }

// IncrementStops records a stop operation.
func (m *Metrics) IncrementStops() { m.stops.Add(1) }

// IncrementReloads records a successful scene reload.
func (m *Metrics) IncrementReloads() { m.reloads.Add(1) }

// IncrementReloadFailures records a scene reload that kept the old scene.
func (m *Metrics) IncrementReloadFailures() { m.reloadFailures.Add(1) }

// IncrementRenders records a render pass.
func (m *Metrics) IncrementRenders() { m.renders.Add(1) }

// AddLuaFailures records failed evaluations of plotted Lua functions.
func (m *Metrics) AddLuaFailures(n int) { m.luaFailures.Add(int64(n)) }

// IncrementErrors records an error occurrence.
func (m *Metrics) IncrementErrors() { m.errorsTotal.Add(1) }

// IncrementEventsEmitted records an event emission.
func (m *Metrics) IncrementEventsEmitted() { m.eventsEmitted.Add(1) }

// RecordSnapshot records a rendered snapshot and how long it took.
func (m *Metrics) RecordSnapshot(d time.Duration) {
	m.snapshots.Add(1)
	m.snapshotLatencyNs.Add(d.Nanoseconds())
	m.snapshotLatencyCount.Add(1)
}

// SetRunning updates the running state gauge.
func (m *Metrics) SetRunning(running bool) {
	if running {
		m.currentlyRunning.Store(1)
	} else {
		m.currentlyRunning.Store(0)
	}
}

// SetPrimitives updates the primitive count gauge.
func (m *Metrics) SetPrimitives(n int) { m.primitives.Store(int32(n)) }

// Reset clears all metrics. Useful for testing.
func (m *Metrics) Reset() {
	m.starts.Store(0)
	m.stops.Store(0)
	m.reloads.Store(0)
	m.reloadFailures.Store(0)
	m.renders.Store(0)
	m.luaFailures.Store(0)
	m.errorsTotal.Store(0)
	m.eventsEmitted.Store(0)
	m.snapshots.Store(0)

	m.snapshotLatencyNs.Store(0)
	m.snapshotLatencyCount.Store(0)

	m.currentlyRunning.Store(0)
	m.primitives.Store(0)
}

// safeDivide performs safe division, returning 0 for divide by zero.
func safeDivide(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}

var defaultMetrics = NewMetrics()

// DefaultMetrics returns the global default Metrics instance.
func DefaultMetrics() *Metrics {
	return defaultMetrics
}
