package ports

import (
	"context"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
)

// Source supplies time-ordered heart-rate readings on request (health
// data stores, message brokers, simulators, push bridges). FetchLatest
// returns up to limit samples; with newestFirst the most recent reading
// comes first. The poller keeps at most one call outstanding per poll.
type Source interface {
	FetchLatest(ctx context.Context, limit int, newestFirst bool) ([]domain.Sample, error)
}
