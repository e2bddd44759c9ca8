package hrv

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch indicates a batch with no readings; the mean of an
// empty interval series is undefined.
var ErrEmptyBatch = errors.New("hrv: empty batch")

// InvalidSampleError reports a reading whose rate value makes the
// interval conversion undefined (rate <= 0). The whole batch is
// rejected rather than the single reading skipped.
type InvalidSampleError struct {
	Index int
	Value float64
}

func (e *InvalidSampleError) Error() string {
	return fmt.Sprintf("hrv: invalid rate %v at index %d", e.Value, e.Index)
}
