package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeBackend is a simple in-memory Backend implementation for tests.
type fakeBackend struct {
	mu sync.Mutex

	counters   []counterCall
	histograms []histCall
	flushCount int
}

type counterCall struct {
	name   string
	delta  float64
	labels Labels
}

type histCall struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters = append(f.counters, counterCall{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.histograms = append(f.histograms, histCall{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushCount++
	return nil
}

func TestRecordStageSuccessAndFailure(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	backend = fb

	RecordStage("run1", "crm_cust_info", "cleanse", nil, 2*time.Second)
	RecordStage("run1", "crm_cust_info", "cleanse", errors.New("boom"), time.Second)

	if len(fb.counters) != 2 || len(fb.histograms) != 2 {
		t.Fatalf("calls: counters=%d histograms=%d", len(fb.counters), len(fb.histograms))
	}
	if fb.counters[0].labels["status"] != "success" {
		t.Fatalf("first call labels = %v", fb.counters[0].labels)
	}
	if fb.counters[1].labels["status"] != "failure" {
		t.Fatalf("second call labels = %v", fb.counters[1].labels)
	}
	if fb.histograms[0].value != 2 {
		t.Fatalf("duration = %v, want 2", fb.histograms[0].value)
	}
}

func TestRecordRowsSkipsNonPositive(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	backend = fb

	RecordRows("run1", "crm_cust_info", "dropped", 0)
	RecordRows("run1", "crm_cust_info", "dropped", -3)
	RecordRows("run1", "crm_cust_info", "processed", 5)

	if len(fb.counters) != 1 {
		t.Fatalf("got %d counter calls, want 1", len(fb.counters))
	}
	if fb.counters[0].delta != 5 || fb.counters[0].labels["kind"] != "processed" {
		t.Fatalf("call = %+v", fb.counters[0])
	}
}

func TestSetBackendNilKeepsExisting(t *testing.T) {
	orig := backend
	defer func() { backend = orig }()

	fb := &fakeBackend{}
	SetBackend(fb)
	SetBackend(nil)
	RecordRows("run1", "t", "processed", 1)
	if len(fb.counters) != 1 {
		t.Fatal("nil SetBackend replaced the backend")
	}
}
