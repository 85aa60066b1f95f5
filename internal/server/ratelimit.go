package server

import (
	"sync"
	"time"

	"github.com/identware/identity-secure/internal/config"
)

// rateLimiter implements per-client token-bucket rate limiting.
type rateLimiter struct {
	cfg     config.RateLimitConfig
	buckets map[string]*tokenBucket
	mu      sync.RWMutex
}

type tokenBucket struct {
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

func newRateLimiter(cfg config.RateLimitConfig) *rateLimiter {
	return &rateLimiter{
		cfg:     cfg,
		buckets: make(map[string]*tokenBucket),
	}
}

// Allow reports whether a request from the given client may proceed.
func (r *rateLimiter) Allow(clientIP string) bool {
	if !r.cfg.Enabled {
		return true
	}
	return r.getBucket(clientIP).consume(1)
}

func (r *rateLimiter) getBucket(clientIP string) *tokenBucket {
	r.mu.RLock()
	bucket, exists := r.buckets[clientIP]
	r.mu.RUnlock()
	if exists {
		return bucket
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if bucket, exists := r.buckets[clientIP]; exists {
		return bucket
	}

	bucket = &tokenBucket{
		tokens:     float64(r.cfg.RequestsPerMin),
		capacity:   float64(r.cfg.RequestsPerMin),
		refillRate: float64(r.cfg.RequestsPerMin) / 60.0,
		lastRefill: time.Now(),
	}
	r.buckets[clientIP] = bucket
	return bucket
}

func (b *tokenBucket) consume(n float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens < n {
		return false
	}
	b.tokens -= n
	return true
}
