package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const historyCacheKey = "indent:history:lines"

// CachedLogLine mirrors one raw indent-log row.
type CachedLogLine struct {
	MRN          string `json:"mrn"`
	Timestamp    string `json:"timestamp"`
	RequestedBy  string `json:"requested_by"`
	Department   string `json:"department"`
	RequiredDate string `json:"required_date"`
	Item         string `json:"item"`
	Qty          string `json:"qty"`
	Unit         string `json:"unit"`
	Note         string `json:"note"`
}

// HistoryCache holds the full raw log under one key with a short TTL. The
// worker invalidates it on every submission, so the TTL only bounds staleness
// after out-of-band edits to the log store.
type HistoryCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewHistoryCache creates a HistoryCache with the given max age.
func NewHistoryCache(r *RedisClient, ttl time.Duration) *HistoryCache {
	return &HistoryCache{client: r, ttl: ttl}
}

// Get returns the cached log rows. Returns redis.Nil when missing or expired.
func (c *HistoryCache) Get(ctx context.Context) ([]CachedLogLine, error) {
	data, err := c.client.Client().Get(ctx, historyCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("history cache get: %w", err)
	}
	var lines []CachedLogLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("history cache decode: %w", err)
	}
	return lines, nil
}

// Set stores the log rows with the configured TTL.
func (c *HistoryCache) Set(ctx context.Context, lines []CachedLogLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("history cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, historyCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("history cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached log so the next history read hits the store.
func (c *HistoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, historyCacheKey).Err(); err != nil {
		return fmt.Errorf("history cache invalidate: %w", err)
	}
	return nil
}
