package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"mediahub/internal/model"
)

const (
	// StatsCachePrefix is the key prefix for rating stats caches
	StatsCachePrefix = "rating:stats:"

	// StatsCacheTTL is the TTL for rating stats (1 hour)
	StatsCacheTTL = time.Hour
)

// StatsCache defines the interface for rating stats cache operations.
// Using an interface enables testing with mocks and potential future backends.
type StatsCache interface {
	// Get retrieves the cached stats for a content item.
	// Returns (nil, nil) on a cache miss.
	Get(ctx context.Context, contentType model.ContentType, contentID string) (*model.RatingStats, error)

	// Set stores the stats for a content item with the standard TTL.
	Set(ctx context.Context, contentType model.ContentType, contentID string, stats *model.RatingStats) error

	// Invalidate drops the cached stats for a content item.
	// Called after every rating write so readers never see stale numbers
	// past the next recompute.
	Invalidate(ctx context.Context, contentType model.ContentType, contentID string) error
}

// RedisStatsCache implements StatsCache using Redis string values with
// JSON payloads.
type RedisStatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new StatsCache backed by Redis.
func NewStatsCache(client *redis.Client) StatsCache {
	return &RedisStatsCache{client: client}
}

// statsKey returns the Redis key for a content item's rating stats.
func statsKey(contentType model.ContentType, contentID string) string {
	return fmt.Sprintf("%s%s:%s", StatsCachePrefix, contentType, contentID)
}

func (c *RedisStatsCache) Get(ctx context.Context, contentType model.ContentType, contentID string) (*model.RatingStats, error) {
	key := statsKey(contentType, contentID)

	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		log.Printf("[StatsCache] Get FAILED: key=%s err=%v", key, err)
		return nil, fmt.Errorf("get rating stats: %w", err)
	}

	var stats model.RatingStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		log.Printf("[StatsCache] Get decode error: key=%s err=%v", key, err)
		return nil, nil
	}

	return &stats, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, contentType model.ContentType, contentID string, stats *model.RatingStats) error {
	key := statsKey(contentType, contentID)

	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode rating stats: %w", err)
	}

	if err := c.client.Set(ctx, key, raw, StatsCacheTTL).Err(); err != nil {
		log.Printf("[StatsCache] Set FAILED: key=%s err=%v", key, err)
		return fmt.Errorf("set rating stats: %w", err)
	}

	log.Printf("[StatsCache] Set OK: key=%s total=%d", key, stats.TotalRatings)
	return nil
}

func (c *RedisStatsCache) Invalidate(ctx context.Context, contentType model.ContentType, contentID string) error {
	key := statsKey(contentType, contentID)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Printf("[StatsCache] Invalidate FAILED: key=%s err=%v", key, err)
		return fmt.Errorf("invalidate rating stats: %w", err)
	}

	log.Printf("[StatsCache] Invalidate OK: key=%s", key)
	return nil
}
