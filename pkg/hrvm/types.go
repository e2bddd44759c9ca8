package hrvm

import (
	"github.com/Nick-P-Adams/hrvm/internal/domain"
	"github.com/Nick-P-Adams/hrvm/internal/hrv"
	"github.com/Nick-P-Adams/hrvm/internal/ports"
)

// Sample is a single reading flowing through the pipeline: a heart
// rate on the way in, a variability value on the way out.
type Sample = domain.Sample

// State is the poller lifecycle state.
type State = domain.State

// Update pairs the latest variability value with the poller state.
type Update = domain.Update

const (
	StateStopped  = domain.StateStopped
	StateStarting = domain.StateStarting
	StateActive   = domain.StateActive
)

// Unit declares what the source's sample values mean.
type Unit = hrv.Unit

const (
	UnitBPM        = hrv.UnitBPM
	UnitIntervalMS = hrv.UnitIntervalMS
)

// Summary describes the inter-beat interval distribution behind the
// latest variability value.
type Summary = hrv.Summary

// Source serves the most recent readings on demand (SQL, Redis, NATS,
// simulators, or anything custom).
type Source = ports.Source

// Transformer lets callers adjust readings (calibration, unit fixes)
// before the stats engine sees them.
type Transformer = ports.Transformer

// Subscriber receives every published update.
type Subscriber = ports.Subscriber

// Observability emits metrics/logs about polls, failures, and rejected batches.
type Observability = ports.Observability

// Field is a structured log/metric field used by Observability implementations.
type Field = ports.Field
