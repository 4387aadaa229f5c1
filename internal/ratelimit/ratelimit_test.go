// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives the limiter's view of time without sleeping.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestLimiter(t *testing.T, cfg *Config) (*MemoryRateLimiter, *fakeClock) {
	t.Helper()
	limiter := NewMemoryRateLimiter(cfg)
	t.Cleanup(limiter.Close)

	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	limiter.now = clock.now
	return limiter, clock
}

func TestAllowCeilingWithinWindow(t *testing.T) {
	limiter, _ := newTestLimiter(t, DefaultConfig())
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		allowed, info := limiter.Allow(ctx, "203.0.113.7")
		require.True(t, allowed, "request %d should pass", i)
		assert.Equal(t, 25-i, info.Remaining)
	}

	allowed, info := limiter.Allow(ctx, "203.0.113.7")
	assert.False(t, allowed, "request 26 must be rejected")
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestWindowResetRestoresFullBudget(t *testing.T) {
	limiter, clock := newTestLimiter(t, DefaultConfig())
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		limiter.Allow(ctx, "203.0.113.7")
	}
	allowed, _ := limiter.Allow(ctx, "203.0.113.7")
	require.False(t, allowed)

	clock.advance(61 * time.Second)

	allowed, info := limiter.Allow(ctx, "203.0.113.7")
	assert.True(t, allowed, "expired window starts over")
	assert.Equal(t, 24, info.Remaining)
	assert.Equal(t, clock.current.Add(60*time.Second), info.ResetTime)
}

func TestIdentifiersAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, DefaultConfig())
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		limiter.Allow(ctx, "203.0.113.7")
	}
	allowed, _ := limiter.Allow(ctx, "203.0.113.7")
	require.False(t, allowed)

	allowed, info := limiter.Allow(ctx, "198.51.100.4")
	assert.True(t, allowed, "another client keeps its own budget")
	assert.Equal(t, 24, info.Remaining)
}

func TestCleanupPrunesExpiredWindows(t *testing.T) {
	limiter, clock := newTestLimiter(t, DefaultConfig())
	ctx := context.Background()

	limiter.Allow(ctx, "203.0.113.7")
	limiter.Allow(ctx, "198.51.100.4")

	clock.advance(61 * time.Second)
	limiter.Allow(ctx, "198.51.100.4")
	limiter.cleanup()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.windows, "203.0.113.7")
	assert.Contains(t, limiter.windows, "198.51.100.4")
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "forwarded header wins",
			remoteAddr: "10.0.0.1:5000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "real ip fallback",
			remoteAddr: "10.0.0.1:5000",
			headers:    map[string]string{"X-Real-IP": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "remote addr without headers",
			remoteAddr: "203.0.113.7:5000",
			want:       "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, GetClientIP(r))
		})
	}
}
