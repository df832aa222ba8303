package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const referenceCacheKey = "indent:reference:items"

// CachedReferenceItem is the denormalized reference row stored in Redis.
type CachedReferenceItem struct {
	Name             string   `json:"name"`
	Unit             string   `json:"unit"`
	Category         string   `json:"category"`
	SubCategory      string   `json:"sub_category"`
	Departments      []string `json:"departments"`
	BaseUnit         string   `json:"base_unit,omitempty"`
	ConversionFactor string   `json:"conversion_factor,omitempty"`
}

// ReferenceCache holds the whole reference dataset under one key with a
// caller-specified TTL, so lookups stay bounded-stale without re-reading the
// store on every request.
type ReferenceCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewReferenceCache creates a ReferenceCache with the given max age.
func NewReferenceCache(r *RedisClient, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{client: r, ttl: ttl}
}

// Get returns the cached dataset. Returns redis.Nil when the key is missing
// or expired.
func (c *ReferenceCache) Get(ctx context.Context) ([]CachedReferenceItem, error) {
	data, err := c.client.Client().Get(ctx, referenceCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("reference cache get: %w", err)
	}
	var items []CachedReferenceItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("reference cache decode: %w", err)
	}
	return items, nil
}

// Set stores the dataset with the configured TTL.
func (c *ReferenceCache) Set(ctx context.Context, items []CachedReferenceItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("reference cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, referenceCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("reference cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached dataset (after an import).
func (c *ReferenceCache) Invalidate(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, referenceCacheKey).Err(); err != nil {
		return fmt.Errorf("reference cache invalidate: %w", err)
	}
	return nil
}
