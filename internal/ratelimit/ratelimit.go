// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting configuration
type Config struct {
	WindowSize    time.Duration // Fixed window duration
	MaxRequests   int           // Maximum requests per window
	CleanupPeriod time.Duration // How often to prune expired windows
}

// DefaultConfig matches the generation proxy defaults: 25 requests per minute.
func DefaultConfig() *Config {
	return &Config{
		WindowSize:    60 * time.Second,
		MaxRequests:   25,
		CleanupPeriod: 5 * time.Minute,
	}
}

// RateLimitInfo contains information about rate limit status
type RateLimitInfo struct {
	Allowed    bool
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter gates requests per client identifier. Advisory abuse control,
// not a security boundary.
type Limiter interface {
	Allow(ctx context.Context, identifier string) (bool, *RateLimitInfo)
	Close()
}

// window tracks the current fixed window for one identifier
type window struct {
	Start time.Time
	Count int
}

// MemoryRateLimiter implements in-memory fixed-window rate limiting.
// State is process-local and lost on restart.
type MemoryRateLimiter struct {
	config  *Config
	windows map[string]*window
	mu      sync.Mutex
	stopCh  chan struct{}
	now     func() time.Time
}

// NewMemoryRateLimiter creates a new in-memory rate limiter and starts
// its cleanup goroutine.
func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	limiter := &MemoryRateLimiter{
		config:  config,
		windows: make(map[string]*window),
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}

	go limiter.cleanupLoop()

	return limiter
}

// Allow checks if a request should be allowed
func (rl *MemoryRateLimiter) Allow(_ context.Context, identifier string) (bool, *RateLimitInfo) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	current, exists := rl.windows[identifier]

	// No window yet, or the window has expired: start fresh and allow.
	if !exists || now.Sub(current.Start) > rl.config.WindowSize {
		rl.windows[identifier] = &window{Start: now, Count: 1}
		return true, &RateLimitInfo{
			Allowed:   true,
			Remaining: rl.config.MaxRequests - 1,
			ResetTime: now.Add(rl.config.WindowSize),
		}
	}

	reset := current.Start.Add(rl.config.WindowSize)

	if current.Count >= rl.config.MaxRequests {
		return false, &RateLimitInfo{
			Allowed:    false,
			Remaining:  0,
			ResetTime:  reset,
			RetryAfter: reset.Sub(now),
		}
	}

	current.Count++
	return true, &RateLimitInfo{
		Allowed:   true,
		Remaining: rl.config.MaxRequests - current.Count,
		ResetTime: reset,
	}
}

// cleanupLoop periodically removes expired windows. The original design
// never evicted, which grows without bound under many distinct clients.
func (rl *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for identifier, current := range rl.windows {
		if now.Sub(current.Start) > rl.config.WindowSize {
			delete(rl.windows, identifier)
		}
	}
}

// Close stops the cleanup goroutine
func (rl *MemoryRateLimiter) Close() {
	close(rl.stopCh)
}

// GetClientIP extracts the real client IP from request
func GetClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// Take the first IP in case of multiple
		ips := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(ips[0]); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
