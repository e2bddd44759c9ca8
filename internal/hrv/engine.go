// Package hrv derives heart-rate-variability statistics from batches
// of readings. All functions are pure and safe to call from any
// goroutine.
package hrv

import (
	"math"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
)

// Unit identifies how batch values are encoded.
type Unit int

const (
	// UnitBPM marks instantaneous rates in beats per minute.
	UnitBPM Unit = iota
	// UnitIntervalMS marks pre-computed inter-beat intervals in milliseconds.
	UnitIntervalMS
)

func (u Unit) String() string {
	if u == UnitIntervalMS {
		return "interval_ms"
	}
	return "bpm"
}

const msPerMinute = 60000

// Intervals converts a batch into an inter-beat interval series in
// milliseconds (60000 / rate for bpm batches, pass-through for interval
// batches). A non-positive value anywhere fails the whole batch with
// *InvalidSampleError.
func Intervals(batch []domain.Sample, unit Unit) ([]float64, error) {
	if len(batch) == 0 {
		return nil, ErrEmptyBatch
	}

	out := make([]float64, len(batch))
	for i, s := range batch {
		if s.Value <= 0 {
			return nil, &InvalidSampleError{Index: i, Value: s.Value}
		}
		if unit == UnitIntervalMS {
			out[i] = s.Value
			continue
		}
		out[i] = msPerMinute / s.Value
	}
	return out, nil
}

// Variability computes the population standard deviation of the
// inter-beat interval series. The result carries the timestamp of the
// last reading in the batch: the metric is stamped with the end of the
// observation window, not its mean.
func Variability(batch []domain.Sample, unit Unit) (domain.Sample, error) {
	intervals, err := Intervals(batch, unit)
	if err != nil {
		return domain.Sample{}, err
	}

	var sum float64
	for _, v := range intervals {
		sum += v
	}
	mean := sum / float64(len(intervals))

	var sq float64
	for _, v := range intervals {
		d := v - mean
		sq += d * d
	}
	variance := sq / float64(len(intervals))

	return domain.Sample{
		Value:     math.Sqrt(variance),
		Timestamp: batch[len(batch)-1].Timestamp,
	}, nil
}
