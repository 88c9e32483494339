package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter() (*Limiter, *clock) {
	c := &clock{t: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)}
	l := NewLimiter(5, time.Minute)
	l.now = c.now
	return l, c
}

func TestLimiter_BlocksSixthAttempt(t *testing.T) {
	l, c := newTestLimiter()

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("10.0.0.1")
		require.True(t, ok, "attempt %d", i+1)
	}

	c.advance(20 * time.Second)
	ok, retry := l.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 40*time.Second, retry)

	ok, _ = l.Allow("10.0.0.2")
	assert.True(t, ok, "other clients are independent")
}

func TestLimiter_WindowExpires(t *testing.T) {
	l, c := newTestLimiter()
	for i := 0; i < 5; i++ {
		l.Allow("ip")
	}
	c.advance(time.Minute)

	ok, _ := l.Allow("ip")
	assert.True(t, ok)
}

func TestLimiter_Reset(t *testing.T) {
	l, _ := newTestLimiter()
	for i := 0; i < 5; i++ {
		l.Allow("ip")
	}
	l.Reset("ip")

	ok, _ := l.Allow("ip")
	assert.True(t, ok)
}

func TestLimiter_Sweep(t *testing.T) {
	l, c := newTestLimiter()
	l.Allow("old")
	c.advance(90 * time.Second)
	l.Allow("new")

	require.NoError(t, l.Sweep(context.Background()))
	assert.NotContains(t, l.attempts, "old")
	assert.Contains(t, l.attempts, "new")
}

func TestNewLimiter_Defaults(t *testing.T) {
	l := NewLimiter(0, 0)
	assert.Equal(t, DefaultMaxAttempts, l.maxAttempts)
	assert.Equal(t, DefaultWindow, l.window)
}
