package server

import (
	"testing"

	"github.com/identware/identity-secure/internal/config"
)

func TestRateLimiter_Disabled(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{Enabled: false, RequestsPerMin: 1})

	for i := 0; i < 100; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatal("disabled limiter rejected a request")
		}
	}
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMin: 2})

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("limiter rejected requests within capacity")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("limiter allowed a request over capacity")
	}

	// A different client has its own bucket.
	if !rl.Allow("10.0.0.2") {
		t.Error("limiter starved an unrelated client")
	}
}
