package hrvm

import (
	"context"

	"github.com/Nick-P-Adams/hrvm/internal/store"
)

// PushSource lets external producers feed readings into the pipeline
// directly from Go code: Publish buffers samples, and the poller reads
// them back through the standard fetch contract. Useful when readings
// arrive from an SDK or device driver rather than a broker or store.
type PushSource struct {
	buf *store.Rolling
}

// NewPushSource allocates a push source retaining at most capacity
// readings (256 when capacity <= 0).
func NewPushSource(capacity int) *PushSource {
	if capacity <= 0 {
		capacity = 256
	}
	return &PushSource{buf: store.NewRolling(capacity)}
}

// Publish appends one reading, evicting the oldest when full.
func (p *PushSource) Publish(s Sample) {
	p.buf.Append(s)
}

// Len reports how many readings are currently buffered.
func (p *PushSource) Len() int {
	return p.buf.Len()
}

func (p *PushSource) FetchLatest(ctx context.Context, limit int, newestFirst bool) ([]Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tail := p.buf.Tail(limit)
	if !newestFirst {
		return tail, nil
	}
	out := make([]Sample, len(tail))
	for i, v := range tail {
		out[len(tail)-1-i] = v
	}
	return out, nil
}
