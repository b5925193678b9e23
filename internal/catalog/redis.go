package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces catalog entries in a shared Redis.
const redisKeyPrefix = "appcanvas:catalog:"

// redisEntry is the JSON representation stored in Redis.
type redisEntry struct {
	Items     []Item    `json:"items"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// RedisCache is a Cache shared across builder nodes, backed by Redis.
type RedisCache struct {
	rdb goredis.UniversalClient

	// retention bounds how long entries linger in Redis. It is
	// deliberately longer than the freshness TTL: the resolver judges
	// freshness itself from FetchedAt, and a stale entry is still useful
	// metadata until it is refreshed.
	retention time.Duration
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache creates a Redis-backed cache.
func NewRedisCache(rdb goredis.UniversalClient, retention time.Duration) *RedisCache {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &RedisCache{rdb: rdb, retention: retention}
}

func (c *RedisCache) Get(ctx context.Context, appKey string) ([]Item, time.Time, error) {
	data, err := c.rdb.Get(ctx, redisKeyPrefix+appKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, time.Time{}, ErrCacheMiss
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var entry redisEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, time.Time{}, err
	}
	return entry.Items, entry.FetchedAt, nil
}

func (c *RedisCache) Put(ctx context.Context, appKey string, items []Item) error {
	entry := redisEntry{Items: items, FetchedAt: time.Now().UTC()}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, redisKeyPrefix+appKey, data, c.retention).Err()
}
