package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dwh/internal/cleanse"
	"dwh/internal/derive"
	"dwh/internal/metrics"
)

// Stage names as they appear in reports and metrics.
const (
	StageCleanse  = "cleanse"
	StageDerive   = "derive"
	StageAssemble = "assemble"
)

// StageReport is the outcome of one stage over one table or gold output:
// row counts, elapsed duration, and the error for a structural failure.
type StageReport struct {
	Table    string
	Stage    string
	In       int
	Out      int
	Dropped  int
	Repaired int
	Failed   int
	Duration time.Duration
	Err      error
}

// String renders the report as a single log-friendly line.
func (r StageReport) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s/%s: FAILED after %s: %v", r.Table, r.Stage, r.Duration.Round(time.Millisecond), r.Err)
	}
	return fmt.Sprintf("%s/%s: in=%d out=%d dropped=%d repaired=%d failed=%d in %s",
		r.Table, r.Stage, r.In, r.Out, r.Dropped, r.Repaired, r.Failed, r.Duration.Round(time.Millisecond))
}

// StageError wraps a structural table failure with its table and stage.
type StageError struct {
	Table string
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed for table %s: %v", e.Stage, e.Table, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// BatchError reports a gold output skipped because one or more of the
// tables it depends on never completed.
type BatchError struct {
	Output string   // skipped gold output
	Tables []string // dependency tables whose stages failed
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("output %s skipped: dependency stages failed for %v", e.Output, e.Tables)
}

// stats is the common row-count shape shared by the stage packages.
type stats struct {
	in, out, dropped, repaired, failed int
}

func cleanseStats(st cleanse.Stats) stats {
	return stats{in: st.In, out: st.Out, dropped: st.Dropped, repaired: st.Repaired}
}

func deriveStats(st derive.Stats) stats {
	return stats{in: st.In, out: st.Out, repaired: st.Repaired, failed: st.Failed}
}

// reportSet collects stage reports from concurrent table goroutines.
type reportSet struct {
	mu      sync.Mutex
	reports []StageReport
}

// record finalizes one stage over one table: wraps a structural error into
// a StageError, emits metrics, stores the report. It returns ctx.Err() so
// callers inside an errgroup abort only on cancellation, never on a
// table-level failure.
func (s *reportSet) record(ctx context.Context, job, table, stage string, st stats, d time.Duration, err error) error {
	rep := StageReport{
		Table:    table,
		Stage:    stage,
		In:       st.in,
		Out:      st.out,
		Dropped:  st.dropped,
		Repaired: st.repaired,
		Failed:   st.failed,
		Duration: d,
	}
	if err != nil {
		rep.Err = &StageError{Table: table, Stage: stage, Err: err}
	}

	s.mu.Lock()
	s.reports = append(s.reports, rep)
	s.mu.Unlock()

	metrics.RecordStage(job, table, stage, err, d)
	metrics.RecordRows(job, table, "processed", st.out)
	metrics.RecordRows(job, table, "dropped", st.dropped)
	metrics.RecordRows(job, table, "repaired", st.repaired)
	metrics.RecordRows(job, table, "failed", st.failed)

	return ctx.Err()
}

// assemble times and records one gold-output assembly.
func (s *reportSet) assemble(job, output string, fn func() int) {
	start := time.Now()
	n := fn()
	d := time.Since(start)

	s.mu.Lock()
	s.reports = append(s.reports, StageReport{
		Table: output, Stage: StageAssemble, In: n, Out: n, Duration: d,
	})
	s.mu.Unlock()

	metrics.RecordStage(job, output, StageAssemble, nil, d)
	metrics.RecordRows(job, output, "processed", n)
}

// ok reports whether every listed table completed all its stages cleanly.
func (s *reportSet) ok(tables ...string) bool {
	return len(s.failed(tables...)) == 0
}

// failed returns the subset of tables with at least one failed stage.
func (s *reportSet) failed(tables ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	bad := map[string]bool{}
	for _, r := range s.reports {
		if r.Err != nil {
			bad[r.Table] = true
		}
	}
	var out []string
	for _, t := range tables {
		if bad[t] {
			out = append(out, t)
		}
	}
	return out
}

// list returns the reports in a stable (table, stage) order.
func (s *reportSet) list() []StageReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StageReport, len(s.reports))
	copy(out, s.reports)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Table != out[j].Table {
			return out[i].Table < out[j].Table
		}
		return out[i].Stage < out[j].Stage
	})
	return out
}
