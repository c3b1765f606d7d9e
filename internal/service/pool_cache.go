package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marinai/marinai-backend/internal/config"
	"github.com/marinai/marinai-backend/internal/grading"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a PoolCache that holds no pool for a key.
var ErrCacheMiss = errors.New("pool not cached")

// PoolCache stores deduplicated CBT pools per license and grade.
type PoolCache interface {
	Get(ctx context.Context, lg model.LicenseGrade) (grading.Pool, error)
	Set(ctx context.Context, lg model.LicenseGrade, pool grading.Pool) error
}

// RedisPoolCache keeps CBT pools in Redis as JSON with a TTL.
type RedisPoolCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisPoolCache creates a RedisPoolCache.
func NewRedisPoolCache(rdb *redis.Client, ttl time.Duration) *RedisPoolCache {
	return &RedisPoolCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached pool, or ErrCacheMiss.
func (c *RedisPoolCache) Get(ctx context.Context, lg model.LicenseGrade) (grading.Pool, error) {
	key := config.CacheKey.CBTPoolKey(string(lg.License), string(lg.Grade))
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("get pool: %w", err)
	}

	var pool grading.Pool
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("unmarshal pool: %w", err)
	}
	return pool, nil
}

// Set stores pool under its license and grade.
func (c *RedisPoolCache) Set(ctx context.Context, lg model.LicenseGrade, pool grading.Pool) error {
	data, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("marshal pool: %w", err)
	}
	key := config.CacheKey.CBTPoolKey(string(lg.License), string(lg.Grade))
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache pool: %w", err)
	}
	return nil
}

// Flush drops every cached pool, e.g. after a question import.
func (c *RedisPoolCache) Flush(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, config.CacheKey.CBTPoolPattern(), 100).Result()
		if err != nil {
			return removed, fmt.Errorf("scan pools: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("delete pools: %w", err)
			}
			removed += int(n)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}
