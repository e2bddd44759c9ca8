// Package natssource bridges a push-based NATS subject onto the
// fetch-on-demand source contract: readings arriving on the subject
// are buffered in a rolling window, and FetchLatest serves from that
// buffer without touching the broker.
package natssource

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
	"github.com/Nick-P-Adams/hrvm/internal/store"
)

// Reading is the wire format producers publish on the subject.
// Timestamps are unix milliseconds.
type Reading struct {
	BPM float64 `json:"bpm"`
	TS  int64   `json:"ts"`
}

type Source struct {
	conn *nats.Conn
	sub  *nats.Subscription
	buf  *store.Rolling
}

// Connect subscribes to subject on the given server and starts
// buffering readings. buffer bounds how many readings are retained.
func Connect(url, subject string, buffer int) (*Source, error) {
	conn, err := nats.Connect(url,
		nats.Name("hrvm-source"),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("natssource: connect %s: %w", url, err)
	}

	s := &Source{conn: conn, buf: store.NewRolling(buffer)}
	sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		// Malformed readings are dropped, not fatal.
		_ = s.ingest(msg.Data)
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("natssource: subscribe %s: %w", subject, err)
	}
	s.sub = sub
	return s, nil
}

func (s *Source) ingest(data []byte) error {
	var r Reading
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("natssource: decode: %w", err)
	}
	s.buf.Append(domain.Sample{
		Value:     r.BPM,
		Timestamp: time.UnixMilli(r.TS).UTC(),
	})
	return nil
}

func (s *Source) FetchLatest(ctx context.Context, limit int, newestFirst bool) ([]domain.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tail := s.buf.Tail(limit)
	if !newestFirst {
		return tail, nil
	}
	out := make([]domain.Sample, len(tail))
	for i, v := range tail {
		out[len(tail)-1-i] = v
	}
	return out, nil
}

// Close unsubscribes and drains the connection.
func (s *Source) Close() error {
	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			s.conn.Close()
			return fmt.Errorf("natssource: unsubscribe: %w", err)
		}
	}
	if err := s.conn.Drain(); err != nil {
		s.conn.Close()
		return fmt.Errorf("natssource: drain: %w", err)
	}
	return nil
}
