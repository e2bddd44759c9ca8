package hrvm

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/Nick-P-Adams/hrvm/internal/adapters/observability"
	"github.com/Nick-P-Adams/hrvm/internal/adapters/source/natssource"
	"github.com/Nick-P-Adams/hrvm/internal/adapters/source/redissource"
	"github.com/Nick-P-Adams/hrvm/internal/adapters/source/simsource"
	"github.com/Nick-P-Adams/hrvm/internal/adapters/source/sqlsource"
	"github.com/Nick-P-Adams/hrvm/internal/app/poller"
	"github.com/Nick-P-Adams/hrvm/internal/hrv"
	"github.com/Nick-P-Adams/hrvm/internal/ports"
)

// RuntimeOption customizes the dependencies used by Runtime.
type RuntimeOption func(*runtimeOverrides)

type runtimeOverrides struct {
	source        Source
	transformer   Transformer
	observability Observability
	subscribers   []Subscriber
}

// WithSource injects a custom source implementation (wearable SDKs,
// push sources, test stubs, etc.).
func WithSource(src Source) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.source = src
	}
}

// WithTransformer overrides the default no-op transformer.
func WithTransformer(t Transformer) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.transformer = t
	}
}

// WithObservability plugs in a custom observability backend (OpenTelemetry, structured logs, etc.).
func WithObservability(obs Observability) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.observability = obs
	}
}

// WithSubscriber attaches a subscriber that receives every published update.
func WithSubscriber(sub Subscriber) RuntimeOption {
	return func(o *runtimeOverrides) {
		if sub != nil {
			o.subscribers = append(o.subscribers, sub)
		}
	}
}

// Runtime wires up the source → stats engine → rolling stores pipeline
// and exposes simple lifecycle hooks for embedding the monitor inside
// any Go service.
type Runtime struct {
	cfg *Config
	obs ports.Observability
	src Source
	p   *poller.Poller

	db          *sql.DB
	redisClient *redis.Client
	natsSrc     *natssource.Source
	metricsSrv  *http.Server
	gaugeStopCh chan struct{}
}

// NewRuntime bootstraps the default adapters (source per config kind,
// Prometheus observability). Callers can use RuntimeOption values to
// override any dependency.
func NewRuntime(cfg *Config, opts ...RuntimeOption) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var overrides runtimeOverrides
	for _, opt := range opts {
		if opt != nil {
			opt(&overrides)
		}
	}

	obs := overrides.observability
	if obs == nil {
		obs = observability.NewPromObs()
	}

	rt := &Runtime{cfg: cfg, obs: obs}

	src := overrides.source
	if src == nil {
		var err error
		src, err = rt.buildSource()
		if err != nil {
			return nil, err
		}
	}
	if src == nil {
		return nil, fmt.Errorf("source is nil")
	}
	rt.src = src

	unit := hrv.UnitBPM
	if cfg.Sampling.Unit == "interval_ms" {
		unit = hrv.UnitIntervalMS
	}

	rt.p = poller.New(src, poller.Config{
		WindowSize:  cfg.Sampling.WindowSize,
		RawCapacity: cfg.Sampling.RawCapacity,
		HRVCapacity: cfg.Sampling.HRVCapacity,
		Unit:        unit,
	}, overrides.transformer, obs)

	for _, sub := range overrides.subscribers {
		rt.p.Attach(sub)
	}
	return rt, nil
}

func (r *Runtime) buildSource() (Source, error) {
	switch r.cfg.Source.Kind {
	case "sim":
		return simsource.New(r.cfg.Source.Sim.BaseRate, r.cfg.Source.Sim.Jitter), nil
	case "sql":
		driver := r.cfg.Source.SQL.Driver
		if driver == "" {
			driver = "postgres"
		}
		db, err := sql.Open(driver, r.cfg.Source.SQL.ConnString)
		if err != nil {
			return nil, err
		}
		r.db = db
		return sqlsource.New(db, r.cfg.Source.SQL.Table,
			r.cfg.Source.SQL.ValueColumn, r.cfg.Source.SQL.TimeColumn), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     r.cfg.Source.Redis.Addr,
			Password: r.cfg.Source.Redis.Password,
			DB:       r.cfg.Source.Redis.DB,
		})
		r.redisClient = client
		return redissource.New(client, r.cfg.Source.Redis.Key), nil
	case "nats":
		src, err := natssource.Connect(r.cfg.Source.NATS.URL,
			r.cfg.Source.NATS.Subject, r.cfg.Source.NATS.Buffer)
		if err != nil {
			return nil, err
		}
		r.natsSrc = src
		return src, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", r.cfg.Source.Kind)
	}
}

// Start transitions the poller out of Stopped, issues the first poll,
// and launches the observability stack. It returns immediately; call
// Run to block on a context instead.
func (r *Runtime) Start(ctx context.Context) error {
	if r == nil {
		return fmt.Errorf("runtime is nil")
	}
	if err := r.p.Start(ctx); err != nil {
		return err
	}
	r.startMetrics()
	return nil
}

// Run starts the runtime, keeps polling on the configured interval,
// and blocks until the provided context is cancelled. Upon
// cancellation it attempts a graceful shutdown.
func (r *Runtime) Run(ctx context.Context) error {
	if err := r.Start(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ticker := time.NewTicker(r.cfg.Sampling.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				// Poll already counts and logs its failures; a bad
				// cycle must not bring the runtime down.
				pollCtx, cancel := context.WithTimeout(gctx, r.cfg.Sampling.PollInterval)
				_ = r.p.Poll(pollCtx)
				cancel()
			}
		}
	})

	err := g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := r.Shutdown(shutdownCtx); serr != nil {
		return serr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Poll triggers one fetch→compute→publish cycle immediately.
func (r *Runtime) Poll(ctx context.Context) error {
	return r.p.Poll(ctx)
}

// Observe returns the latest variability value and poller status as a
// consistent pair.
func (r *Runtime) Observe() Update {
	return r.p.Observe()
}

// Latest returns the most recent variability value, if any.
func (r *Runtime) Latest() (Sample, bool) {
	return r.p.Latest()
}

// Status reports the poller state.
func (r *Runtime) Status() State {
	return r.p.Status()
}

// RawHistory returns the raw readings of the most recent successful
// poll window, oldest first.
func (r *Runtime) RawHistory() []Sample {
	return r.p.RawHistory()
}

// HRVHistory returns the derived variability values, oldest first.
func (r *Runtime) HRVHistory() []Sample {
	return r.p.HRVHistory()
}

// LastSummary returns the interval distribution behind the latest value.
func (r *Runtime) LastSummary() (Summary, bool) {
	return r.p.LastSummary()
}

// StopPolling discards any in-flight poll result, clears the published
// value, and parks the poller in Stopped.
func (r *Runtime) StopPolling() {
	r.p.Stop()
}

// ResumePolling re-arms polling after StopPolling without restarting
// the runtime.
func (r *Runtime) ResumePolling() {
	r.p.Resume()
}

// Subscribe attaches a buffered channel subscriber and returns the
// channel plus its close function.
func (r *Runtime) Subscribe(buffer int) (<-chan Update, func()) {
	sub, ch, closeFn := NewChannelSubscriber("", buffer)
	r.p.Attach(sub)
	return ch, closeFn
}

// OnUpdate attaches a callback subscriber.
func (r *Runtime) OnUpdate(name string, fn UpdateFunc) {
	r.p.Attach(NewCallbackSubscriber(name, fn))
}

// Shutdown stops polling, the metrics server, and any source connections.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error

	if r.gaugeStopCh != nil {
		close(r.gaugeStopCh)
		r.gaugeStopCh = nil
	}

	if r.metricsSrv != nil {
		if err := r.metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
		r.metricsSrv = nil
	}

	r.p.Stop()

	if r.natsSrc != nil {
		if err := r.natsSrc.Close(); err != nil {
			errs = append(errs, err)
		}
		r.natsSrc = nil
	}
	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			errs = append(errs, err)
		}
		r.redisClient = nil
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			errs = append(errs, err)
		}
		r.db = nil
	}

	return errors.Join(errs...)
}

func (r *Runtime) startMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.metricsSrv = &http.Server{
		Addr:    r.cfg.Metrics.Addr,
		Handler: mux,
	}

	go func(srv *http.Server) {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server exited: %v", err)
		}
	}(r.metricsSrv)

	r.gaugeStopCh = make(chan struct{})
	go r.recordStoreGauges(r.gaugeStopCh, time.Second)
}

func (r *Runtime) recordStoreGauges(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.obs.SetGauge("hrvm_raw_store_length", float64(r.p.RawLen()))
			r.obs.SetGauge("hrvm_hrv_store_length", float64(r.p.HRVLen()))
		}
	}
}
