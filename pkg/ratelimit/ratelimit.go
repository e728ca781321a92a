// Package ratelimit implements a per-user sliding window limiter with
// pluggable state: in-process for a single replica, Redis for several.
package ratelimit

import (
	"context"
	"strconv"
	"time"
)

// Store records hits for a key and decides whether another one fits the window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (bool, error)
}

// Limiter allows at most limit actions per user within window.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// Option customises a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// New builds a Limiter. Non-positive values fall back to 5 per minute.
func New(store Store, limit int, window time.Duration, opts ...Option) *Limiter {
	if limit <= 0 {
		limit = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	l := &Limiter{store: store, limit: limit, window: window, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records an action for userID and reports whether it was within the limit.
// Refused actions are not recorded.
func (l *Limiter) Allow(ctx context.Context, userID int64) (bool, error) {
	return l.store.Allow(ctx, strconv.FormatInt(userID, 10), l.limit, l.window, l.now())
}

// Limit returns the configured number of actions per window.
func (l *Limiter) Limit() int { return l.limit }

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration { return l.window }
