// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the warehouse pipeline.
//
// It exposes a narrow Backend interface (counters and timing data) behind a
// global, pluggable backend that defaults to a no-op implementation, so
// metric calls are always safe even when no real backend is configured. The
// rest of the codebase depends only on this package; concrete systems
// (Prometheus Pushgateway) live in subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage measures latency plus success/failure for one pipeline stage
// run over one source table.
func RecordStage(job, table, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"table":  table,
		"stage":  stage,
		"status": status,
	}

	backend.IncCounter("dwh_stage_total", 1, lbls)
	backend.ObserveHistogram("dwh_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given table and kind.
//
// Kinds mirror the per-table report fields:
//   - "processed"
//   - "dropped"
//   - "repaired"
//   - "failed"
func RecordRows(job, table, kind string, delta int) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("dwh_rows_total", float64(delta), Labels{
		"job":   job,
		"table": table,
		"kind":  kind,
	})
}
