package domain

import "time"

// Sample is the canonical unit of measurement in hrvm: an instantaneous
// heart rate in beats per minute on the way in, or a derived inter-beat
// variability in milliseconds on the way out of the stats engine.
// Samples are immutable value types and safe to copy freely.
type Sample struct {
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"ts"`
}
