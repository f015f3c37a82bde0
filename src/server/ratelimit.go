package server

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter tracks one token bucket per user key.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewRateLimiter creates a per-user rate limiter. A non-positive rps
// disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// Allow reports whether the user may make a request right now.
func (r *RateLimiter) Allow(userKey string) bool {
	if r.rps <= 0 {
		return true
	}

	r.mu.Lock()
	limiter, ok := r.limiters[userKey]
	if !ok {
		limiter = rate.NewLimiter(r.rps, r.burst)
		r.limiters[userKey] = limiter
	}
	r.mu.Unlock()

	return limiter.Allow()
}
