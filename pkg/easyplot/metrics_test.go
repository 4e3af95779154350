package easyplot

import (
	"expvar"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	snap := NewMetrics().Snapshot()
	if snap != (MetricsSnapshot{}) {
		t.Errorf("new metrics = %+v, want zero", snap)
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementStarts()
	m.IncrementStarts()
	m.IncrementStops()
	m.IncrementReloads()
	m.IncrementReloadFailures()
	m.IncrementRenders()
	m.IncrementRenders()
	m.IncrementRenders()
	m.AddLuaFailures(7)
	m.IncrementErrors()
	m.IncrementEventsEmitted()

	snap := m.Snapshot()

	tests := []struct {
		name     string
		got      int64
		expected int64
	}{
		{"Starts", snap.Starts, 2},
		{"Stops", snap.Stops, 1},
		{"Reloads", snap.Reloads, 1},
		{"ReloadFailures", snap.ReloadFailures, 1},
		{"Renders", snap.Renders, 3},
		{"LuaFailures", snap.LuaFailures, 7},
		{"ErrorsTotal", snap.ErrorsTotal, 1},
		{"EventsEmitted", snap.EventsEmitted, 1},
	}

	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: got %d, expected %d", tt.name, tt.got, tt.expected)
		}
	}
}

func TestMetricsGauges(t *testing.T) {
	m := NewMetrics()

	m.SetRunning(true)
	m.SetPrimitives(5)
	snap := m.Snapshot()
	if !snap.Running || snap.Primitives != 5 {
		t.Errorf("gauges = %+v", snap)
	}

	m.SetRunning(false)
	if m.Snapshot().Running {
		t.Error("Running should be false after SetRunning(false)")
	}
}

func TestMetricsSnapshotLatency(t *testing.T) {
	m := NewMetrics()
	m.RecordSnapshot(10 * time.Millisecond)
	m.RecordSnapshot(30 * time.Millisecond)

	snap := m.Snapshot()
	if snap.Snapshots != 2 {
		t.Errorf("Snapshots = %d", snap.Snapshots)
	}
	if snap.SnapshotLatencyAvg != 20*time.Millisecond {
		t.Errorf("SnapshotLatencyAvg = %v, want 20ms", snap.SnapshotLatencyAvg)
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.IncrementStarts()
	m.SetRunning(true)
	m.RecordSnapshot(time.Second)

	m.Reset()
	if snap := m.Snapshot(); snap != (MetricsSnapshot{}) {
		t.Errorf("after Reset: %+v", snap)
	}
}

func TestMetricsRegisterExpvar(t *testing.T) {
	m := NewMetrics()
	m.RegisterExpvar()
	// a second call must not publish the names again
	m.RegisterExpvar()

	m.IncrementReloads()
	v := expvar.Get("easyplot_reloads_total")
	if v == nil {
		t.Fatal("easyplot_reloads_total not published")
	}
	if got := v.String(); got != "1" {
		t.Errorf("easyplot_reloads_total = %s, want 1", got)
	}
	if got := expvar.Get("easyplot_snapshot_latency_avg_ms").String(); got != "0" {
		t.Errorf("latency without snapshots = %s", got)
	}
}

func TestDefaultMetrics(t *testing.T) {
	if DefaultMetrics() != DefaultMetrics() {
		t.Error("DefaultMetrics should return the same instance")
	}
}
