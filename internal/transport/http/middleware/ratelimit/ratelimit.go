// Package ratelimit provides per-client token bucket rate limiting.
package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mandalnilabja/llmshim/internal/types"
)

// Limiter tracks one token bucket per client.
type Limiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a limiter allowing rps requests per second with the given
// burst. A non-positive rps disables limiting.
func New(rps float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Enabled reports whether requests are limited at all.
func (l *Limiter) Enabled() bool {
	return l != nil && l.rps > 0
}

// Allow checks if a request from client is allowed under the rate limit.
func (l *Limiter) Allow(client string) bool {
	if !l.Enabled() {
		return true
	}
	return l.get(client).Allow()
}

func (l *Limiter) get(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[client]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[client] = lim
		slog.Debug("created rate limiter", "client", client, "rps", float64(l.rps), "burst", l.burst)
	}
	return lim
}

// retryAfter is the whole number of seconds until one token refills.
func (l *Limiter) retryAfter() int {
	secs := int(time.Duration(float64(time.Second) / float64(l.rps)).Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Middleware returns an HTTP middleware that enforces rate limits per
// client IP.
func Middleware(limiter *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !limiter.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				writeTooManyRequests(w, limiter.retryAfter())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the remote host without its port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeTooManyRequests writes an OpenAI-compatible 429 response.
func writeTooManyRequests(w http.ResponseWriter, retryAfter int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	types.WriteError(w, http.StatusTooManyRequests, types.ErrRateLimit("rate limit exceeded"))
}
