package ports

import "github.com/Nick-P-Adams/hrvm/internal/domain"

// Transformer lets callers adjust raw readings (calibration, unit
// fixes, artifact correction) before the stats engine sees them. An
// error rejects the whole batch.
type Transformer interface {
	Transform(domain.Sample) (domain.Sample, error)
}
