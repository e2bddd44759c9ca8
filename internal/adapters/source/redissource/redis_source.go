// Package redissource reads heart-rate samples from a Redis list.
// Producers LPUSH JSON-encoded samples, so index 0 of the list is the
// newest reading and LRANGE 0..limit-1 yields newest-first windows.
package redissource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Nick-P-Adams/hrvm/internal/domain"
)

type Source struct {
	client *redis.Client
	key    string
}

func New(client *redis.Client, key string) *Source {
	return &Source{client: client, key: key}
}

func (s *Source) FetchLatest(ctx context.Context, limit int, newestFirst bool) ([]domain.Sample, error) {
	if limit <= 0 {
		return nil, nil
	}
	entries, err := s.client.LRange(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redissource: lrange %s: %w", s.key, err)
	}
	out, err := decodeEntries(entries)
	if err != nil {
		return nil, err
	}
	if !newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// Publish prepends a sample to the list and trims it so the backlog
// stays bounded at keep entries. Meant for producers feeding the same
// key a Source reads from.
func Publish(ctx context.Context, client *redis.Client, key string, keep int64, s domain.Sample) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("redissource: encode: %w", err)
	}
	pipe := client.Pipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, keep-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redissource: publish %s: %w", key, err)
	}
	return nil
}

func decodeEntries(entries []string) ([]domain.Sample, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	out := make([]domain.Sample, 0, len(entries))
	for i, e := range entries {
		var s domain.Sample
		if err := json.Unmarshal([]byte(e), &s); err != nil {
			return nil, fmt.Errorf("redissource: entry %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}
