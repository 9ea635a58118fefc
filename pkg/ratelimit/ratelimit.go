// Package ratelimit caps the number of accepted actions per key within a fixed window.
//
// A window opens on the first accepted action for a key and lasts Window. Inside
// the window at most Limit actions are accepted; denied actions do not touch the
// counter. Once the window has elapsed the next action opens a new one.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Decision is the outcome of a single Allow call
type Decision struct {
	Allowed bool
	Count   int
	Limit   int
	ResetAt time.Time
}

// Remaining returns how many more actions the key may take in the current window
func (d Decision) Remaining() int {
	if r := d.Limit - d.Count; r > 0 {
		return r
	}
	return 0
}

// Store atomically checks and increments the counter for key.
type Store interface {
	Take(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}

// Config holds configuration for a Limiter
type Config struct {
	// Accepted actions per window
	Limit int
	// Window duration
	Window time.Duration
	// Prepended to every key, so several limiters can share one store
	KeyPrefix string
	// Primary store (e.g. Redis). Nil means Fallback is used directly.
	Store Store
	// Used when Store is nil or errors and FailClosed is false
	Fallback Store
	// Whether to reject when Store is unavailable
	FailClosed bool
	// Called when Store fails, before falling back
	OnStoreError func(err error)
}

// Limiter enforces Config against its stores
type Limiter struct {
	cfg Config
}

// New creates a Limiter. A missing Fallback defaults to a fresh MemoryStore.
func New(cfg Config) *Limiter {
	if cfg.Fallback == nil {
		cfg.Fallback = NewMemoryStore()
	}
	return &Limiter{cfg: cfg}
}

// Limit returns the configured number of actions per window
func (l *Limiter) Limit() int {
	return l.cfg.Limit
}

// Window returns the configured window
func (l *Limiter) Window() time.Duration {
	return l.cfg.Window
}

// Allow records an action for key if the key still has budget in its window.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	fullKey := l.cfg.KeyPrefix + key

	if l.cfg.Store != nil {
		d, err := l.cfg.Store.Take(ctx, fullKey, l.cfg.Limit, l.cfg.Window)
		if err == nil {
			return d, nil
		}
		if l.cfg.OnStoreError != nil {
			l.cfg.OnStoreError(err)
		}
		if l.cfg.FailClosed {
			return Decision{Limit: l.cfg.Limit}, fmt.Errorf("rate limit store unavailable: %w", err)
		}
	}

	return l.cfg.Fallback.Take(ctx, fullKey, l.cfg.Limit, l.cfg.Window)
}
