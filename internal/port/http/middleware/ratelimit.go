package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/plantnet/server/internal/platform/logger"
)

// RequestLimiter is implemented by the redis-backed fixed-window counter.
type RequestLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects callers that exceed the per-IP request cap. Limiter errors
// fail open: a broken redis must not take the API down with it.
func RateLimit(limiter RequestLimiter, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				ip = host
			}
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}

			allowed, err := limiter.Allow(r.Context(), ip)
			if err != nil {
				log.Warnf("rate limiter unavailable: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				reject(w, http.StatusTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
