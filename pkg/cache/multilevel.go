package cache

import (
	"context"
	"time"
)

// backfillTTL bounds how long an L2 hit stays in process before it is re-read.
const backfillTTL = time.Minute

// MultiLevelCache reads the in-process level first and falls back to Redis.
type MultiLevelCache struct {
	local  Cache
	remote Cache
}

func NewMultiLevelCache(local, remote Cache) *MultiLevelCache {
	return &MultiLevelCache{
		local:  local,
		remote: remote,
	}
}

// Set writes both levels; L1 keeps the entry for half the TTL.
func (m *MultiLevelCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	_ = m.local.Set(ctx, key, value, ttl/2)
	return m.remote.Set(ctx, key, value, ttl)
}

// Get backfills L1 from a remote hit. The local level serialises on Set, so
// the decoded target is copied rather than retained.
func (m *MultiLevelCache) Get(ctx context.Context, key string, target interface{}) error {
	if err := m.local.Get(ctx, key, target); err == nil {
		return nil
	}
	if err := m.remote.Get(ctx, key, target); err != nil {
		return ErrMiss
	}
	_ = m.local.Set(ctx, key, target, backfillTTL)
	return nil
}

func (m *MultiLevelCache) Delete(ctx context.Context, key string) error {
	_ = m.local.Delete(ctx, key)
	return m.remote.Delete(ctx, key)
}
