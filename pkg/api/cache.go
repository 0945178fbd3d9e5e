package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/procsafe/hazard-engine/pkg/compliance"
)

const quickStatusKeyPrefix = "hazard:quickstatus:"

// QuickStatusCache caches quick compliance status snapshots in Redis.
// A nil cache is valid and disables caching, so callers never need to
// branch on whether Redis is configured.
type QuickStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuickStatusCache connects to Redis at addr. Entries expire after ttl.
func NewQuickStatusCache(addr string, ttl time.Duration) *QuickStatusCache {
	return &QuickStatusCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Get returns the cached status for an analysis, or false on miss.
// Cache errors are treated as misses.
func (c *QuickStatusCache) Get(ctx context.Context, analysisID string) (*compliance.QuickStatus, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, quickStatusKeyPrefix+analysisID).Bytes()
	if err != nil {
		return nil, false
	}
	var qs compliance.QuickStatus
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, false
	}
	return &qs, true
}

// Set stores the status for an analysis.
func (c *QuickStatusCache) Set(ctx context.Context, analysisID string, qs *compliance.QuickStatus) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(qs)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, quickStatusKeyPrefix+analysisID, raw, c.ttl).Err()
}

// Invalidate drops the cached status after entries or reports change.
func (c *QuickStatusCache) Invalidate(ctx context.Context, analysisID string) {
	if c == nil {
		return
	}
	_ = c.client.Del(ctx, quickStatusKeyPrefix+analysisID).Err()
}

// Close releases the Redis connection.
func (c *QuickStatusCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
