package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/davidbz/launchpad/internal/observability"
	"github.com/davidbz/launchpad/internal/ratelimit"
)

// RateLimit rejects clients over their budget with 429. A nil limiter
// disables limiting. Store failures let the request through.
func RateLimit(limiter *ratelimit.Limiter) Middleware {
	if limiter == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := clientKey(r)

			allowed, err := limiter.Allow(ctx, key)
			if err != nil {
				observability.FromContext(ctx).Warn("rate limiter unavailable, allowing request",
					observability.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				observability.FromContext(ctx).Info("rate limit exceeded",
					observability.String("client", key))
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", retryAfter(limiter))
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Too many requests"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller by remote host.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfter(limiter *ratelimit.Limiter) string {
	seconds := int(limiter.Window().Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
