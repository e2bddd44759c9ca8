// Package poller owns the sampling lifecycle: it fetches windows of
// readings from a source, runs them through the stats engine, and
// maintains the rolling histories and the published latest value.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
	"github.com/Nick-P-Adams/hrvm/internal/hrv"
	"github.com/Nick-P-Adams/hrvm/internal/ports"
	"github.com/Nick-P-Adams/hrvm/internal/store"
)

const (
	DefaultWindowSize  = 15
	DefaultRawCapacity = 60
	DefaultHRVCapacity = 15
)

// Config carries the sampling parameters. Zero values fall back to the
// defaults above.
type Config struct {
	WindowSize  int
	RawCapacity int
	HRVCapacity int
	Unit        hrv.Unit
}

func (c *Config) applyDefaults() {
	if c.WindowSize <= 0 {
		c.WindowSize = DefaultWindowSize
	}
	if c.RawCapacity <= 0 {
		c.RawCapacity = DefaultRawCapacity
	}
	if c.HRVCapacity <= 0 {
		c.HRVCapacity = DefaultHRVCapacity
	}
}

// Poller orchestrates source → stats engine → rolling stores and owns
// the Stopped/Starting/Active state machine. It never schedules
// itself: each Poll is triggered externally by a ticker or caller.
type Poller struct {
	source ports.Source
	tr     ports.Transformer
	obs    ports.Observability
	cfg    Config

	raw     *store.Rolling
	derived *store.Rolling

	mu            sync.Mutex
	state         domain.State
	stopRequested bool
	latest        *domain.Sample
	summary       hrv.Summary
	summaryValid  bool
	subs          []ports.Subscriber
}

func New(source ports.Source, cfg Config, tr ports.Transformer, obs ports.Observability) *Poller {
	cfg.applyDefaults()
	if tr == nil {
		tr = noopTransformer{}
	}
	if obs == nil {
		obs = nopObservability{}
	}
	return &Poller{
		source:  source,
		tr:      tr,
		obs:     obs,
		cfg:     cfg,
		raw:     store.NewRolling(cfg.RawCapacity),
		derived: store.NewRolling(cfg.HRVCapacity),
	}
}

// Start transitions a stopped poller to Starting, clears the stop
// flag, and issues the first fetch asynchronously.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.state != domain.StateStopped {
		p.mu.Unlock()
		return ErrNotStopped
	}
	p.stopRequested = false
	p.state = domain.StateStarting
	p.obs.SetGauge("hrvm_poller_state", float64(p.state))
	p.mu.Unlock()

	go func() {
		// Poll reports its own failures.
		_ = p.Poll(ctx)
	}()
	return nil
}

// Poll performs one fetch→compute→publish cycle. Failures are counted
// and logged through the observability sink, leave state and stores
// untouched, and are returned only for the host's benefit — nothing
// reaches the subscriber surface.
func (p *Poller) Poll(ctx context.Context) error {
	start := time.Now()
	batch, err := p.source.FetchLatest(ctx, p.cfg.WindowSize, true)
	p.obs.ObserveLatency("hrvm_fetch_duration_seconds", time.Since(start).Seconds())
	return p.complete(batch, err)
}

// complete is the single critical section between "fetch result
// received" and "stores updated / status published". Nothing
// interleaves here for the same poll.
func (p *Poller) complete(batch []domain.Sample, fetchErr error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.obs.IncCounter("hrvm_polls_total", 1)

	if p.stopRequested {
		// A poll that loses the race against Stop has zero observable
		// effect: no store mutation, no publication, state left as-is.
		p.obs.IncCounter("hrvm_discarded_results_total", 1)
		return nil
	}

	if fetchErr != nil {
		err := &SourceUnavailableError{Err: fetchErr}
		p.obs.IncCounter("hrvm_poll_failures_total", 1)
		p.obs.LogError("fetch_failed", err)
		return err
	}
	if len(batch) == 0 {
		p.obs.IncCounter("hrvm_empty_results_total", 1)
		p.obs.LogError("empty_result", ErrEmptyResult)
		return ErrEmptyResult
	}

	// The source hands back newest-first; the stats engine and the
	// stores want chronological order.
	chrono := reversed(batch)
	for i := range chrono {
		s, err := p.tr.Transform(chrono[i])
		if err != nil {
			p.obs.RecordRejectedBatch(len(chrono), err)
			return fmt.Errorf("poller: transform: %w", err)
		}
		chrono[i] = s
	}

	value, err := hrv.Variability(chrono, p.cfg.Unit)
	if err != nil {
		p.obs.RecordRejectedBatch(len(chrono), err)
		return err
	}
	summary, err := hrv.Summarize(chrono, p.cfg.Unit)
	if err != nil {
		p.obs.RecordRejectedBatch(len(chrono), err)
		return err
	}

	p.raw.ReplaceAll(chrono)
	p.derived.Append(value)

	v := value
	p.latest = &v
	p.summary = summary
	p.summaryValid = true
	p.state = domain.StateActive

	p.obs.SetGauge("hrvm_latest_hrv_ms", value.Value)
	p.obs.SetGauge("hrvm_poller_state", float64(p.state))
	p.publishLocked()
	return nil
}

// Stop sets the stop flag so any in-flight fetch result is discarded,
// clears the published value, and moves to Stopped. Allowed from any
// state. The underlying fetch is not aborted; only its result is
// ignored.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopRequested = true
	p.latest = nil
	p.summary = hrv.Summary{}
	p.summaryValid = false
	p.state = domain.StateStopped

	p.obs.SetGauge("hrvm_poller_state", float64(p.state))
	p.publishLocked()
}

// Resume clears the stop flag without touching state, re-arming
// subsequent Poll calls after a Stop.
func (p *Poller) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopRequested = false
}

// Attach registers a subscriber for every future published update.
func (p *Poller) Attach(sub ports.Subscriber) {
	if sub == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, sub)
}

// Observe returns the latest value and status as a consistent pair.
func (p *Poller) Observe() domain.Update {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.observeLocked()
}

// Latest returns the most recently published variability value, if
// any. Absent while stopped and before the first successful poll.
func (p *Poller) Latest() (domain.Sample, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest == nil {
		return domain.Sample{}, false
	}
	return *p.latest, true
}

// LastSummary returns the interval distribution behind the latest
// variability value.
func (p *Poller) LastSummary() (hrv.Summary, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.summary, p.summaryValid
}

func (p *Poller) Status() domain.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// RawHistory returns the raw readings of the most recent successful
// poll window, oldest first.
func (p *Poller) RawHistory() []domain.Sample {
	return p.raw.Snapshot()
}

// HRVHistory returns the derived variability values, oldest first.
func (p *Poller) HRVHistory() []domain.Sample {
	return p.derived.Snapshot()
}

func (p *Poller) RawLen() int { return p.raw.Len() }

func (p *Poller) HRVLen() int { return p.derived.Len() }

func (p *Poller) observeLocked() domain.Update {
	u := domain.Update{Status: p.state}
	if p.latest != nil {
		v := *p.latest
		u.HRV = &v
	}
	return u
}

func (p *Poller) publishLocked() {
	if len(p.subs) == 0 {
		return
	}
	u := p.observeLocked()
	for _, sub := range p.subs {
		if err := sub.Publish(u); err != nil {
			p.obs.IncCounter("hrvm_subscriber_errors_total", 1)
			p.obs.LogError("subscriber_publish_failed", err,
				ports.Field{Key: "subscriber", Value: sub.Name()})
		}
	}
}

func reversed(in []domain.Sample) []domain.Sample {
	out := make([]domain.Sample, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

type noopTransformer struct{}

func (noopTransformer) Transform(s domain.Sample) (domain.Sample, error) { return s, nil }

type nopObservability struct{}

func (nopObservability) LogInfo(string, ...ports.Field)            {}
func (nopObservability) LogError(string, error, ...ports.Field)    {}
func (nopObservability) LogCritical(string, error, ...ports.Field) {}
func (nopObservability) IncCounter(string, float64)                {}
func (nopObservability) ObserveLatency(string, float64)            {}
func (nopObservability) SetGauge(string, float64)                  {}
func (nopObservability) RecordRejectedBatch(int, error)            {}
