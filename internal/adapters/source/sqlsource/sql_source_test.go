package sqlsource

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestFetchLatestNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	src := New(db, "heart_rate_samples", "bpm", "ts")

	base := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"bpm", "ts"}).
		AddRow(72.0, base).
		AddRow(70.0, base.Add(-time.Second)).
		AddRow(68.0, base.Add(-2*time.Second))

	expectedQuery := regexp.QuoteMeta("SELECT bpm, ts FROM heart_rate_samples ORDER BY ts DESC LIMIT 3")
	mock.ExpectQuery(expectedQuery).WillReturnRows(rows)

	got, err := src.FetchLatest(context.Background(), 3, true)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
	if got[0].Value != 72 || got[2].Value != 68 {
		t.Fatalf("samples out of order: %v", got)
	}
	if !got[0].Timestamp.After(got[2].Timestamp) {
		t.Fatalf("expected newest first ordering")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFetchLatestChronological(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	src := New(db, "heart_rate_samples", "bpm", "ts")

	base := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"bpm", "ts"}).
		AddRow(72.0, base).
		AddRow(70.0, base.Add(-time.Second))

	expectedQuery := regexp.QuoteMeta("SELECT bpm, ts FROM heart_rate_samples ORDER BY ts DESC LIMIT 2")
	mock.ExpectQuery(expectedQuery).WillReturnRows(rows)

	got, err := src.FetchLatest(context.Background(), 2, false)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got[0].Value != 70 || got[1].Value != 72 {
		t.Fatalf("expected chronological order, got %v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFetchLatestQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	src := New(db, "heart_rate_samples", "bpm", "ts")
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	if _, err := src.FetchLatest(context.Background(), 5, true); err == nil {
		t.Fatalf("expected error from failed query")
	}
}

func TestFetchLatestZeroLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	src := New(db, "heart_rate_samples", "bpm", "ts")
	got, err := src.FetchLatest(context.Background(), 0, true)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no samples for zero limit, got %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
