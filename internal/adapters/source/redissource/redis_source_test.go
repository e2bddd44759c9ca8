package redissource

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
)

func encode(t *testing.T, s domain.Sample) string {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return string(b)
}

func TestDecodeEntries(t *testing.T) {
	base := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	entries := []string{
		encode(t, domain.Sample{Value: 72, Timestamp: base}),
		encode(t, domain.Sample{Value: 70, Timestamp: base.Add(-time.Second)}),
	}

	got, err := decodeEntries(entries)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[0].Value != 72 || got[1].Value != 70 {
		t.Fatalf("decoded values wrong: %v", got)
	}
	if !got[0].Timestamp.Equal(base) {
		t.Fatalf("timestamp lost in decode: %v", got[0].Timestamp)
	}
}

func TestDecodeEntriesEmpty(t *testing.T) {
	got, err := decodeEntries(nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for empty list, got %v", got)
	}
}

func TestDecodeEntriesBadPayload(t *testing.T) {
	_, err := decodeEntries([]string{"{not json"})
	if err == nil {
		t.Fatalf("expected error for malformed entry")
	}
}
