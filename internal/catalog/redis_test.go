package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

func TestRedisCacheIntegration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping redis integration test")
	}

	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	cache := NewRedisCache(rdb, time.Hour)

	appKey := "redis-test-" + time.Now().Format("150405.000")
	defer rdb.Del(ctx, redisKeyPrefix+appKey)

	if _, _, err := cache.Get(ctx, appKey); err != ErrCacheMiss {
		t.Fatalf("pre-put error = %v, want ErrCacheMiss", err)
	}

	compareAt := 30.0
	put := []Item{{ID: "p-1", Title: "Tee", Price: 19.99, CompareAtPrice: &compareAt, Vendor: "Acme"}}
	if err := cache.Put(ctx, appKey, put); err != nil {
		t.Fatalf("put: %v", err)
	}

	items, fetchedAt, err := cache.Get(ctx, appKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(items) != 1 || items[0].ID != "p-1" {
		t.Fatalf("items = %v", items)
	}
	if items[0].CompareAtPrice == nil || *items[0].CompareAtPrice != 30.0 {
		t.Error("compare-at price lost in round trip")
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Errorf("fetchedAt = %v, not recent", fetchedAt)
	}
}
