package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestViewCacheKey(t *testing.T) {
	assert.Equal(t, "directory:view:abc:doctors:sortBy=fees", ViewCacheKey("doctors", "abc", "sortBy=fees"))
	assert.Equal(t, "directory:view:abc:doctors:", ViewCacheKey("doctors", "abc", ""))
}

func TestNoopViewCache(t *testing.T) {
	cache := NewViewCache(nil, time.Minute, logrus.New())

	cache.Set(context.Background(), "k", []byte("v"))
	value, ok := cache.Get(context.Background(), "k")

	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestRedisViewCache_UnreachableServerIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	log, hook := test.NewNullLogger()
	cache := NewViewCache(client, time.Minute, log)

	cache.Set(context.Background(), "k", []byte("v"))
	value, ok := cache.Get(context.Background(), "k")

	assert.False(t, ok)
	assert.Nil(t, value)
	assert.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
