package hrv

import (
	"fmt"
	"math"

	"github.com/DataDog/sketches-go/ddsketch"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
)

// sketchAccuracy is the relative accuracy of the percentile sketch.
const sketchAccuracy = 0.01

// Summary describes the inter-beat interval distribution behind a
// variability value. Percentiles are approximate within
// sketchAccuracy.
type Summary struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
	P50   float64
	P90   float64
	P99   float64
}

// Summarize builds interval distribution diagnostics for a batch. It
// shares the validation semantics of Variability: an empty batch or a
// non-positive reading fails the whole call.
func Summarize(batch []domain.Sample, unit Unit) (Summary, error) {
	intervals, err := Intervals(batch, unit)
	if err != nil {
		return Summary{}, err
	}

	sketch, err := ddsketch.NewDefaultDDSketch(sketchAccuracy)
	if err != nil {
		return Summary{}, fmt.Errorf("hrv: build sketch: %w", err)
	}

	sum := Summary{
		Count: len(intervals),
		Min:   math.MaxFloat64,
		Max:   -math.MaxFloat64,
	}

	var total float64
	for _, v := range intervals {
		total += v
		if v < sum.Min {
			sum.Min = v
		}
		if v > sum.Max {
			sum.Max = v
		}
		if err := sketch.Add(v); err != nil {
			return Summary{}, fmt.Errorf("hrv: sketch add: %w", err)
		}
	}
	sum.Mean = total / float64(len(intervals))

	if p, err := sketch.GetValueAtQuantile(0.50); err == nil {
		sum.P50 = p
	}
	if p, err := sketch.GetValueAtQuantile(0.90); err == nil {
		sum.P90 = p
	}
	if p, err := sketch.GetValueAtQuantile(0.99); err == nil {
		sum.P99 = p
	}

	return sum, nil
}
