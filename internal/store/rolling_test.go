package store

import (
	"testing"
	"time"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
)

func sampleAt(v float64, sec int) domain.Sample {
	return domain.Sample{Value: v, Timestamp: time.Unix(int64(sec), 0).UTC()}
}

func TestRollingAppendEvictsOldest(t *testing.T) {
	r := NewRolling(3)

	a := sampleAt(1, 1)
	b := sampleAt(2, 2)
	c := sampleAt(3, 3)
	d := sampleAt(4, 4)

	for _, s := range []domain.Sample{a, b, c, d} {
		r.Append(s)
	}

	if r.Len() != 3 {
		t.Fatalf("expected len 3 after eviction, got %d", r.Len())
	}

	got := r.Snapshot()
	want := []domain.Sample{b, c, d}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected contents at %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestRollingNeverExceedsCapacity(t *testing.T) {
	r := NewRolling(5)
	for i := 0; i < 100; i++ {
		r.Append(sampleAt(float64(i), i))
		if r.Len() > r.Cap() {
			t.Fatalf("len %d exceeded cap %d after %d appends", r.Len(), r.Cap(), i+1)
		}
	}

	got := r.Snapshot()
	for i, s := range got {
		if s.Value != float64(95+i) {
			t.Fatalf("expected newest 5 entries, got value %v at %d", s.Value, i)
		}
	}
}

func TestRollingReplaceAllTruncatesToNewest(t *testing.T) {
	r := NewRolling(3)
	r.Append(sampleAt(99, 0))

	batch := []domain.Sample{
		sampleAt(1, 1), sampleAt(2, 2), sampleAt(3, 3), sampleAt(4, 4), sampleAt(5, 5),
	}
	r.ReplaceAll(batch)

	got := r.Snapshot()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries after replace, got %d", len(got))
	}
	for i, want := range []float64{3, 4, 5} {
		if got[i].Value != want {
			t.Fatalf("expected value %v at %d, got %v", want, i, got[i].Value)
		}
	}
}

func TestRollingReplaceAllEmpty(t *testing.T) {
	r := NewRolling(3)
	r.Append(sampleAt(1, 1))
	r.ReplaceAll(nil)
	if r.Len() != 0 {
		t.Fatalf("expected empty store after ReplaceAll(nil), got %d", r.Len())
	}
}

func TestRollingSnapshotIsACopy(t *testing.T) {
	r := NewRolling(3)
	r.Append(sampleAt(1, 1))

	snap := r.Snapshot()
	snap[0] = sampleAt(42, 42)

	if got := r.Snapshot()[0].Value; got != 1 {
		t.Fatalf("mutating a snapshot leaked into the store: got %v", got)
	}
}

func TestRollingTail(t *testing.T) {
	r := NewRolling(5)
	for i := 1; i <= 4; i++ {
		r.Append(sampleAt(float64(i), i))
	}

	tail := r.Tail(2)
	if len(tail) != 2 || tail[0].Value != 3 || tail[1].Value != 4 {
		t.Fatalf("unexpected tail: %+v", tail)
	}

	if got := r.Tail(10); len(got) != 4 {
		t.Fatalf("expected full contents when n exceeds len, got %d", len(got))
	}
	if got := r.Tail(0); got != nil {
		t.Fatalf("expected nil tail for n=0, got %+v", got)
	}
}
