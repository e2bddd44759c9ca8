package observability

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Nick-P-Adams/hrvm/internal/ports"
)

type PromObs struct {
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

func NewPromObs() *PromObs {
	polls := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hrvm_polls_total",
		Help: "Total poll cycles completed, whatever the outcome.",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hrvm_poll_failures_total",
		Help: "Poll cycles that failed because the source was unavailable.",
	})
	empty := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hrvm_empty_results_total",
		Help: "Poll cycles where the source returned no samples.",
	})
	discarded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hrvm_discarded_results_total",
		Help: "In-flight poll results discarded because a stop was requested.",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hrvm_rejected_batches_total",
		Help: "Batches rejected wholesale due to an invalid sample.",
	})
	subErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hrvm_subscriber_errors_total",
		Help: "Update deliveries that returned an error from a subscriber.",
	})
	latestHRV := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hrvm_latest_hrv_ms",
		Help: "Most recently published heart-rate variability in milliseconds.",
	})
	state := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hrvm_poller_state",
		Help: "Poller state: 0 stopped, 1 starting, 2 active.",
	})
	rawLen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hrvm_raw_store_length",
		Help: "Number of raw readings currently held in the rolling store.",
	})
	hrvLen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hrvm_hrv_store_length",
		Help: "Number of variability values currently held in the rolling store.",
	})
	fetchLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hrvm_fetch_duration_seconds",
		Help:    "Wall-clock duration of a single source fetch.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	prometheus.MustRegister(polls, failures, empty, discarded, rejected,
		subErrors, latestHRV, state, rawLen, hrvLen, fetchLatency)

	return &PromObs{
		counters: map[string]prometheus.Counter{
			"hrvm_polls_total":             polls,
			"hrvm_poll_failures_total":     failures,
			"hrvm_empty_results_total":     empty,
			"hrvm_discarded_results_total": discarded,
			"hrvm_rejected_batches_total":  rejected,
			"hrvm_subscriber_errors_total": subErrors,
		},
		gauges: map[string]prometheus.Gauge{
			"hrvm_latest_hrv_ms":    latestHRV,
			"hrvm_poller_state":     state,
			"hrvm_raw_store_length": rawLen,
			"hrvm_hrv_store_length": hrvLen,
		},
		histos: map[string]prometheus.Observer{
			"hrvm_fetch_duration_seconds": fetchLatency,
		},
	}
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	if err != nil {
		log.Printf("ERROR: %s: %v", msg, err)
	}
}

func (p *PromObs) LogCritical(msg string, err error, fields ...ports.Field) {
	if err != nil {
		log.Printf("CRITICAL: %s: %v", msg, err)
	}
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func (p *PromObs) RecordRejectedBatch(size int, err error) {
	p.IncCounter("hrvm_rejected_batches_total", 1)
	if err != nil {
		log.Printf("rejected batch size=%d err=%v", size, err)
	}
}
