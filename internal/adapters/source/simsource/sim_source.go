// Package simsource synthesizes plausible heart-rate readings so the
// pipeline can run without any external feed. The signal is a slow
// sinusoidal drift around a base rate plus deterministic jitter, which
// keeps the derived variability non-zero and repeatable.
package simsource

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
)

const (
	minRate = 30
	maxRate = 220
)

// Source is safe for concurrent fetches: the host fires the initial
// poll on its own goroutine while the ticker issues further ones.
type Source struct {
	base   float64
	jitter float64
	tick   atomic.Uint64
	now    func() time.Time
}

func New(base, jitter float64) *Source {
	if base <= 0 {
		base = 72
	}
	if jitter < 0 {
		jitter = 0
	}
	return &Source{base: base, jitter: jitter, now: time.Now}
}

func (s *Source) FetchLatest(ctx context.Context, limit int, newestFirst bool) ([]domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	end := s.now().UTC()
	out := make([]domain.Sample, limit)
	for i := 0; i < limit; i++ {
		// Readings are one second apart, ending at now.
		offset := limit - 1 - i
		out[i] = domain.Sample{
			Value:     s.rate(s.tick.Add(1)),
			Timestamp: end.Add(-time.Duration(offset) * time.Second),
		}
	}

	if newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (s *Source) rate(tick uint64) float64 {
	t := float64(tick)
	drift := 4 * math.Sin(t/30)
	noise := (fract(math.Sin(t*12.9898)*43758.5453) - 0.5) * 2 * s.jitter
	return clamp(s.base+drift+noise, minRate, maxRate)
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
