package httpserver

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	limiterTableSize = 10000
	limiterIdleTTL   = 5 * time.Minute
)

// RateLimiter enforces a token bucket per client IP. Idle clients age out
// of a bounded LRU table.
type RateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
	onReject func(w http.ResponseWriter, r *http.Request)
}

// NewRateLimiter creates a per-IP limiter allowing r requests per second
// with the given burst. onReject writes the 429 body; nil uses a plain text
// response.
func NewRateLimiter(r rate.Limit, burst int, onReject func(w http.ResponseWriter, r *http.Request)) *RateLimiter {
	if onReject == nil {
		onReject = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		}
	}
	return &RateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](limiterTableSize, nil, limiterIdleTTL),
		rate:     r,
		burst:    burst,
		onReject: onReject,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	if l, ok := rl.limiters.Get(ip); ok {
		rl.limiters.Add(ip, l)
		return l
	}
	l := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters.Add(ip, l)
	return l
}

// Middleware rejects requests over the limit with 429 and Retry-After.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(clientIP(r)).Allow() {
			retryAfter := 1
			if rl.rate > 0 {
				retryAfter = max(int(1.0/float64(rl.rate)), 1)
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			rl.onReject(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
