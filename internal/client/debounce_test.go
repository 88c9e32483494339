package client

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_RunsOnlyLastTrigger(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var (
		mu   sync.Mutex
		runs []uint64
	)
	record := func(ctx context.Context, gen uint64) {
		mu.Lock()
		defer mu.Unlock()
		runs = append(runs, gen)
	}

	d.Trigger(context.Background(), record)
	d.Trigger(context.Background(), record)
	last := d.Trigger(context.Background(), record)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(runs) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{last}, runs)
	assert.True(t, d.IsCurrent(last))
}

func TestDebouncer_CancelsInFlightCall(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	defer d.Stop()

	started := make(chan struct{})
	cancelled := make(chan struct{})
	first := d.Trigger(context.Background(), func(ctx context.Context, gen uint64) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	})

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first call did not start")
	}

	var ran atomic.Bool
	second := d.Trigger(context.Background(), func(ctx context.Context, gen uint64) {
		ran.Store(true)
	})

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("in-flight call was not cancelled")
	}
	assert.Eventually(t, ran.Load, time.Second, 5*time.Millisecond)
	assert.False(t, d.IsCurrent(first))
	assert.True(t, d.IsCurrent(second))
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var ran atomic.Bool
	d.Trigger(context.Background(), func(ctx context.Context, gen uint64) {
		ran.Store(true)
	})
	d.Stop()

	time.Sleep(40 * time.Millisecond)
	require.False(t, ran.Load())
}
