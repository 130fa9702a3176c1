// Package httpapi is the thin HTTP transport boundary: routing, CORS, the
// per-IP rate limiter, and the mapping of evaluation errors to status codes.
package httpapi

import (
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter is a per-client-IP token bucket limiter.
type RateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewRateLimiter builds a limiter allowing perMinute requests/minute/client,
// with a burst equal to perMinute.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
	}
}

// Allow reports whether clientID may proceed now, consuming a token if so.
func (r *RateLimiter) Allow(clientID string) bool {
	return r.limiterFor(clientID).Allow()
}

func (r *RateLimiter) limiterFor(clientID string) *rate.Limiter {
	r.mu.RLock()
	l, ok := r.limiters[clientID]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok = r.limiters[clientID]; ok {
		return l
	}
	l = rate.NewLimiter(r.limit, r.burst)
	r.limiters[clientID] = l
	return l
}

// ClientIP extracts the client IP, honoring X-Forwarded-For's first entry
// and falling back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host := r.RemoteAddr
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}
	return host
}
