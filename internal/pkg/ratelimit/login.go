// Package ratelimit throttles login attempts per client address.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = time.Minute
)

type window struct {
	count int
	start time.Time
}

// Limiter counts attempts per key inside a fixed window.
type Limiter struct {
	maxAttempts int
	window      time.Duration
	attempts    map[string]*window
	mu          sync.Mutex
	now         func() time.Time
}

func NewLimiter(maxAttempts int, win time.Duration) *Limiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if win <= 0 {
		win = DefaultWindow
	}
	return &Limiter{
		maxAttempts: maxAttempts,
		window:      win,
		attempts:    make(map[string]*window),
		now:         time.Now,
	}
}

// Allow records an attempt for key. When the window is exhausted it returns
// false and the time left until the window resets.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.attempts[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.attempts[key] = &window{count: 1, start: now}
		return true, 0
	}

	if w.count >= l.maxAttempts {
		retry := w.start.Add(l.window).Sub(now)
		if retry < time.Second {
			retry = time.Second
		}
		return false, retry
	}

	w.count++
	return true, 0
}

// Reset forgets every attempt recorded for key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

// Sweep drops windows that have already expired.
func (l *Limiter) Sweep(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, w := range l.attempts {
		if now.Sub(w.start) >= l.window {
			delete(l.attempts, key)
			removed++
		}
	}
	if removed > 0 {
		slog.Debug("Rate limit windows swept", "removed", removed, "remaining", len(l.attempts))
	}
	return ctx.Err()
}
