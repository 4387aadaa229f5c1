// File: internal/ratelimit/redis_test.go
package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiterFailsOpen(t *testing.T) {
	// Port 1 is never a Redis server; every command fails immediately.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	limiter := NewRedisRateLimiter(client, DefaultConfig())
	defer limiter.Close()

	allowed, info := limiter.Allow(context.Background(), "203.0.113.7")
	assert.True(t, allowed, "backend failure must not block the request")
	require.NotNil(t, info)
	assert.Equal(t, DefaultConfig().MaxRequests, info.Remaining)
}

func TestRedisRateLimiterEvaluate(t *testing.T) {
	limiter := NewRedisRateLimiter(nil, DefaultConfig())

	allowed, info := limiter.evaluate(1, 60*time.Second)
	assert.True(t, allowed)
	assert.Equal(t, 24, info.Remaining)

	allowed, info = limiter.evaluate(25, 30*time.Second)
	assert.True(t, allowed)
	assert.Equal(t, 0, info.Remaining)

	allowed, info = limiter.evaluate(26, 30*time.Second)
	assert.False(t, allowed)
	assert.Equal(t, 30*time.Second, info.RetryAfter)
}

func TestRedisRateLimiterEvaluateBoundsMissingExpiry(t *testing.T) {
	limiter := NewRedisRateLimiter(nil, DefaultConfig())

	// TTL -1 is a counter that lost its expiry. The rejection must never
	// outlive one window.
	allowed, info := limiter.evaluate(26, -1)
	assert.False(t, allowed)
	assert.Equal(t, limiter.config.WindowSize, info.RetryAfter)
	assert.False(t, info.ResetTime.After(time.Now().Add(limiter.config.WindowSize)))

	allowed, info = limiter.evaluate(1, -1)
	assert.True(t, allowed)
	assert.Equal(t, 24, info.Remaining)
}
