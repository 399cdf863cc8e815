package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// SlotCacheKey builds the cache key for one provider-day of resolved slots.
func SlotCacheKey(providerID string, date string) string {
	return fmt.Sprintf("slots:%s:%s", providerID, date)
}

// CacheSlots stores a resolved day payload with a short TTL. Slot data is
// derived state, so staleness is bounded by the TTL and by explicit
// invalidation on schedule writes.
func CacheSlots(key string, payload []byte, ttl time.Duration) {
	if Client == nil {
		return
	}
	Client.Set(Ctx, key, payload, ttl)
}

// GetCachedSlots returns the cached payload for a provider-day, if any.
func GetCachedSlots(key string) ([]byte, bool) {
	if Client == nil {
		return nil, false
	}
	val, err := Client.Get(Ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// InvalidateProviderSlots drops every cached day for a provider. Called when
// the weekly schedule, a blocked time, or an appointment changes.
func InvalidateProviderSlots(providerID string) {
	if Client == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%s:*", providerID)
	iter := Client.Scan(Ctx, 0, pattern, 0).Iterator()
	for iter.Next(Ctx) {
		Client.Del(Ctx, iter.Val())
	}
}
