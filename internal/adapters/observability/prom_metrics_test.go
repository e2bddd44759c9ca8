package observability

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPromObsMetrics(t *testing.T) {
	origReg := prometheus.DefaultRegisterer
	origGatherer := prometheus.DefaultGatherer
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = origReg
		prometheus.DefaultGatherer = origGatherer
	})

	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg

	obs := NewPromObs()

	obs.IncCounter("hrvm_polls_total", 5)
	if got := testutil.ToFloat64(obs.counters["hrvm_polls_total"]); got != 5 {
		t.Fatalf("expected polls counter 5, got %f", got)
	}

	obs.IncCounter("hrvm_discarded_results_total", 2)
	if got := testutil.ToFloat64(obs.counters["hrvm_discarded_results_total"]); got != 2 {
		t.Fatalf("expected discarded counter 2, got %f", got)
	}

	obs.SetGauge("hrvm_latest_hrv_ms", 42)
	if got := testutil.ToFloat64(obs.gauges["hrvm_latest_hrv_ms"]); got != 42 {
		t.Fatalf("expected latest gauge 42, got %f", got)
	}

	obs.ObserveLatency("hrvm_fetch_duration_seconds", 0.5)
	hCollector := obs.histos["hrvm_fetch_duration_seconds"].(prometheus.Collector)
	if samples := testutil.CollectAndCount(hCollector); samples != 1 {
		t.Fatalf("expected fetch histogram to record 1 sample, got %d", samples)
	}

	obs.RecordRejectedBatch(15, errors.New("bad sample"))
	if got := testutil.ToFloat64(obs.counters["hrvm_rejected_batches_total"]); got != 1 {
		t.Fatalf("expected rejected counter 1, got %f", got)
	}

	// Unknown names are ignored rather than panicking.
	obs.IncCounter("hrvm_unknown_total", 1)
	obs.SetGauge("hrvm_unknown", 1)
	obs.ObserveLatency("hrvm_unknown_seconds", 1)
}
