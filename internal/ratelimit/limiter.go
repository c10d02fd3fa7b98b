// Package ratelimit implements a fixed-window request limiter keyed by client.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Config contains rate limiting settings. A zero Requests disables limiting.
type Config struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS" envDefault:"0"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW"   envDefault:"1m"`
}

// Enabled reports whether the config asks for limiting.
func (c Config) Enabled() bool {
	return c.Requests > 0 && c.Window > 0
}

// Store counts hits per key inside a window.
type Store interface {
	// Increment adds one hit to key and returns the count for the current window.
	// The window starts with the first hit.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter allows at most limit hits per key per window.
type Limiter struct {
	store  Store
	limit  int64
	window time.Duration
}

// NewLimiter creates a new limiter over store.
func NewLimiter(store Store, limit int, window time.Duration) (*Limiter, error) {
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}

	return &Limiter{
		store:  store,
		limit:  int64(limit),
		window: window,
	}, nil
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Increment(ctx, key, l.window)
	if err != nil {
		return false, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	return count <= l.limit, nil
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}

// Close releases the store when it holds a connection. Safe on a nil limiter.
func (l *Limiter) Close() error {
	if l == nil {
		return nil
	}
	if closer, ok := l.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
	}
	return nil
}
