package ports

import "github.com/Nick-P-Adams/hrvm/internal/domain"

// Subscriber receives every published update: one per successful poll
// and one per stop. Publish errors are reported through Observability,
// never propagated back to the poller's callers.
type Subscriber interface {
	Publish(domain.Update) error
	Name() string
}
