// Package sqlsource reads heart-rate samples from a relational table,
// newest rows first. It works against any database/sql driver; the
// runtime wires it up for Postgres and SQLite.
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
)

type Source struct {
	db       *sql.DB
	table    string
	valueCol string
	timeCol  string
}

func New(db *sql.DB, table, valueCol, timeCol string) *Source {
	return &Source{db: db, table: table, valueCol: valueCol, timeCol: timeCol}
}

func (s *Source) FetchLatest(ctx context.Context, limit int, newestFirst bool) ([]domain.Sample, error) {
	if limit <= 0 {
		return nil, nil
	}
	// Identifiers come from config, not request input.
	query := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s DESC LIMIT %d",
		s.valueCol, s.timeCol, s.table, s.timeCol, limit)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlsource: query: %w", err)
	}
	defer rows.Close()

	var out []domain.Sample
	for rows.Next() {
		var (
			value float64
			ts    time.Time
		)
		if err := rows.Scan(&value, &ts); err != nil {
			return nil, fmt.Errorf("sqlsource: scan: %w", err)
		}
		out = append(out, domain.Sample{Value: value, Timestamp: ts})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlsource: rows: %w", err)
	}

	if !newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}
