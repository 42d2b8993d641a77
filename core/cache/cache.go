package cache

import (
	"context"
	"encoding/json"
	"time"

	"studio-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a best-effort read-side cache over redis. Every method is
// nil-receiver safe so callers can run without redis in tests.
type Cache struct {
	client *redis.Client
}

func New(addr, password string, db int) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Cache:New:PingFailed, running without cache", "addr", addr, "error", err)
		return nil
	}

	logger.Info("Cache initialized", "addr", addr, "db", db)
	return &Cache{client: client}
}

// GetJSON unmarshals the cached value into dest; returns false on miss
// or any redis/unmarshal failure.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache:GetJSON:Error", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("Cache:GetJSON:UnmarshalError", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Cache:SetJSON:MarshalError", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.Warn("Cache:SetJSON:Error", "key", key, "error", err)
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("Cache:Delete:Error", "keys", keys, "error", err)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
