package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// RedisViewKeyPrefix namespaces cached directory views.
	RedisViewKeyPrefix = "directory:view:"

	// Timeout for individual Redis operations. A slow cache is treated as a miss.
	redisViewTimeout = 500 * time.Millisecond
)

// ViewCache memoizes serialized views. Views are pure functions of the store version and
// the canonical query, so entries never need invalidation within one version.
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// ViewCacheKey builds the cache key for one view of one store version.
func ViewCacheKey(kind, version, canonicalQuery string) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisViewKeyPrefix, version, kind, canonicalQuery)
}

// NewViewCache returns a Redis backed cache, or a cache that never hits when client is nil.
func NewViewCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) ViewCache {
	if client == nil {
		return noopViewCache{}
	}
	return &redisViewCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

type redisViewCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// Get treats every Redis error as a miss.
func (c *redisViewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisViewTimeout)
	defer cancel()

	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read view cache %s: %+v", key, err)
		}
		return nil, false
	}

	c.log.Debugf("View cache hit: %s", key)
	return value, true
}

func (c *redisViewCache) Set(ctx context.Context, key string, value []byte) {
	ctx, cancel := context.WithTimeout(ctx, redisViewTimeout)
	defer cancel()

	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write view cache %s: %+v", key, err)
	}
}

type noopViewCache struct{}

func (noopViewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

func (noopViewCache) Set(ctx context.Context, key string, value []byte) {}
