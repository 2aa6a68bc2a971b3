package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/realtyhub/backend/internal/observability/metrics"
)

// RateLimiter applies a per-client token bucket keyed by source IP. Buckets
// that refill completely are dropped by a background sweep so the map does not
// grow without bound.
type RateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
	}
	go rl.sweep(5 * time.Minute)
	return rl
}

func (rl *RateLimiter) sweep(every time.Duration) {
	for range time.Tick(every) {
		rl.mu.Lock()
		for ip, bucket := range rl.buckets {
			// A full bucket means the client has been quiet for a while.
			if bucket.Tokens() >= float64(rl.burst) {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.RLock()
	bucket := rl.buckets[ip]
	rl.mu.RUnlock()

	if bucket == nil {
		rl.mu.Lock()
		bucket = rl.buckets[ip]
		if bucket == nil {
			bucket = rate.NewLimiter(rl.limit, rl.burst)
			rl.buckets[ip] = bucket
		}
		rl.mu.Unlock()
	}

	return bucket.Allow()
}

func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(GetClientIP(r)) {
				metrics.RateLimitBlocked.WithLabelValues(r.URL.Path).Inc()
				WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
