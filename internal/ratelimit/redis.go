// File: internal/ratelimit/redis.go
package ratelimit

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter implements the same fixed-window policy on a shared
// Redis counter, for deployments running more than one instance.
type RedisRateLimiter struct {
	client *redis.Client
	config *Config
}

func NewRedisRateLimiter(client *redis.Client, config *Config) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, config: config}
}

// Allow increments the window counter for the identifier. INCR, EXPIRE
// and TTL ride a single pipeline; EXPIRE NX arms the window on the first
// increment and re-arms any counter that lost its expiry, so a stuck key
// can never reject a client beyond one window.
// On any Redis error the limiter fails open: this is advisory abuse
// control and must not take the lookup path down with it.
func (rl *RedisRateLimiter) Allow(ctx context.Context, identifier string) (bool, *RateLimitInfo) {
	key := "ratelimit:" + identifier

	pipe := rl.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rl.config.WindowSize)
	ttl := pipe.TTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[RateLimit] Redis error for %s, allowing request: %v", identifier, err)
		return true, &RateLimitInfo{Allowed: true, Remaining: rl.config.MaxRequests}
	}

	return rl.evaluate(incr.Val(), ttl.Val())
}

// evaluate applies the fixed-window policy to the shared counter state.
// A negative ttl means the key carried no expiry; it is bounded by the
// window size so the reset invariant holds even then.
func (rl *RedisRateLimiter) evaluate(count int64, ttl time.Duration) (bool, *RateLimitInfo) {
	if ttl < 0 {
		ttl = rl.config.WindowSize
	}
	reset := time.Now().Add(ttl)

	if count > int64(rl.config.MaxRequests) {
		return false, &RateLimitInfo{
			Allowed:    false,
			Remaining:  0,
			ResetTime:  reset,
			RetryAfter: ttl,
		}
	}

	return true, &RateLimitInfo{
		Allowed:   true,
		Remaining: rl.config.MaxRequests - int(count),
		ResetTime: reset,
	}
}

func (rl *RedisRateLimiter) Close() {
	_ = rl.client.Close()
}
