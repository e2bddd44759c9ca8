package store

import (
	"sync"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
)

// Rolling is a fixed-capacity, insertion-ordered sample buffer with
// oldest-first eviction. One instance holds raw readings (refreshed
// wholesale each poll), another holds derived variability values
// (appended with eviction). Callers supply samples already in
// chronological order; the store never re-sorts.
type Rolling struct {
	mu   sync.RWMutex
	data []domain.Sample
	cap  int
}

func NewRolling(capacity int) *Rolling {
	if capacity <= 0 {
		capacity = 1
	}
	return &Rolling{
		data: make([]domain.Sample, 0, capacity),
		cap:  capacity,
	}
}

// Append adds s at the end, evicting the single oldest entry when the
// buffer is full. Never fails.
func (r *Rolling) Append(s domain.Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.data) >= r.cap {
		r.data = append(r.data[:0], r.data[1:]...)
	}
	r.data = append(r.data, s)
}

// ReplaceAll discards the current contents and installs batch. When
// batch exceeds capacity only the most recent entries are kept, order
// preserved.
func (r *Rolling) ReplaceAll(batch []domain.Sample) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(batch) > r.cap {
		batch = batch[len(batch)-r.cap:]
	}
	r.data = append(r.data[:0], batch...)
}

// Snapshot returns a copy of the current contents in chronological
// order; callers never observe the buffer mid-mutation.
func (r *Rolling) Snapshot() []domain.Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Sample, len(r.data))
	copy(out, r.data)
	return out
}

// Tail returns a copy of the newest n entries in chronological order,
// or everything when n exceeds the current length.
func (r *Rolling) Tail(n int) []domain.Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	if n > len(r.data) {
		n = len(r.data)
	}
	out := make([]domain.Sample, n)
	copy(out, r.data[len(r.data)-n:])
	return out
}

func (r *Rolling) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

func (r *Rolling) Cap() int {
	return r.cap
}
