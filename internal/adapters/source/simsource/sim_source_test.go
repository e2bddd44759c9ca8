package simsource

import (
	"context"
	"sync"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
}

func TestFetchLatestShape(t *testing.T) {
	s := New(72, 3)
	s.now = fixedNow

	got, err := s.FetchLatest(context.Background(), 15, true)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 15 {
		t.Fatalf("expected 15 samples, got %d", len(got))
	}
	if !got[0].Timestamp.Equal(fixedNow()) {
		t.Fatalf("newest sample should end at now, got %v", got[0].Timestamp)
	}
	for i := 1; i < len(got); i++ {
		if diff := got[i-1].Timestamp.Sub(got[i].Timestamp); diff != time.Second {
			t.Fatalf("samples not one second apart at %d: %v", i, diff)
		}
	}
	for i, s := range got {
		if s.Value < minRate || s.Value > maxRate {
			t.Fatalf("sample %d out of physiological range: %v", i, s.Value)
		}
	}
}

func TestFetchLatestChronological(t *testing.T) {
	s := New(72, 3)
	s.now = fixedNow

	got, err := s.FetchLatest(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if !got[i].Timestamp.After(got[i-1].Timestamp) {
			t.Fatalf("expected chronological order at %d", i)
		}
	}
}

func TestSignalVaries(t *testing.T) {
	s := New(72, 3)
	s.now = fixedNow

	got, err := s.FetchLatest(context.Background(), 15, true)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	first := got[0].Value
	varies := false
	for _, smp := range got[1:] {
		if smp.Value != first {
			varies = true
			break
		}
	}
	if !varies {
		t.Fatalf("simulated signal is flat, variability would be zero")
	}
}

func TestBatchesAdvance(t *testing.T) {
	s := New(72, 3)
	s.now = fixedNow

	a, _ := s.FetchLatest(context.Background(), 5, true)
	b, _ := s.FetchLatest(context.Background(), 5, true)
	same := true
	for i := range a {
		if a[i].Value != b[i].Value {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("consecutive batches should advance the signal")
	}
}

func TestConcurrentFetches(t *testing.T) {
	s := New(72, 3)
	s.now = fixedNow

	// The runtime fires the initial poll on its own goroutine while
	// the ticker issues further ones, so overlapping fetches happen in
	// the shipped wiring.
	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				got, err := s.FetchLatest(context.Background(), 5, true)
				if err != nil {
					t.Errorf("fetch: %v", err)
					return
				}
				for _, smp := range got {
					if smp.Value < minRate || smp.Value > maxRate {
						t.Errorf("sample out of range: %v", smp.Value)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func TestZeroLimit(t *testing.T) {
	s := New(72, 3)
	got, err := s.FetchLatest(context.Background(), 0, true)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no samples for zero limit")
	}
}
