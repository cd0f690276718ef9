package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/doafacil/doafacil/internal/service"
)

// RateLimiter checks a client's daily counter and increments it when the
// request is allowed.
type RateLimiter interface {
	CheckAndIncrement(ctx context.Context, clientKey string, dailyLimit int) (*service.RateLimitResult, error)
}

// RateLimitMiddleware enforces per-client daily limits on the public API.
type RateLimitMiddleware struct {
	limiter    RateLimiter
	dailyLimit int
}

// NewRateLimitMiddleware creates a new rate limit middleware.
func NewRateLimitMiddleware(limiter RateLimiter, dailyLimit int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter:    limiter,
		dailyLimit: dailyLimit,
	}
}

// RateLimit checks and enforces the daily per-IP limit.
func (m *RateLimitMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result, err := m.limiter.CheckAndIncrement(r.Context(), clientIP(r), m.dailyLimit)
		if err != nil {
			// Fail open: a Redis outage should not take the directory down.
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		w.Header().Set("X-RateLimit-Used", fmt.Sprintf("%d", result.Used))

		if !result.Allowed {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", result.RetryAfterSecs))
			http.Error(w, `{"success": false, "error": "Rate limit exceeded"}`, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the caller's address, honoring X-Forwarded-For when the
// service runs behind a proxy.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
