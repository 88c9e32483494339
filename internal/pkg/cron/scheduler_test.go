package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsOnInterval(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	s.AddJob("ok", time.Hour, func(ctx context.Context) error { return nil })
	s.AddJob("bad", time.Hour, func(ctx context.Context) error { return errors.New("boom") })

	assert.Equal(t, 1, s.RunOnce(context.Background()))
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler()
	s.Stop()
}

type fakeSweeper struct{ calls int }

func (f *fakeSweeper) Sweep(ctx context.Context) error { f.calls++; return nil }

type fakePurger struct{ calls int }

func (f *fakePurger) PurgeRevoked(ctx context.Context) error { f.calls++; return nil }

type fakePruner struct{ cutoff time.Time }

func (f *fakePruner) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 3, nil
}

func TestMaintenanceJobs(t *testing.T) {
	sw, pu, pr := &fakeSweeper{}, &fakePurger{}, &fakePruner{}
	jobs := NewMaintenanceJobs(sw, pu, pr, 90*24*time.Hour)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	jobs.now = func() time.Time { return now }

	s := NewScheduler()
	jobs.RegisterJobs(s)
	require.Len(t, s.jobs, 3)

	assert.Equal(t, 0, s.RunOnce(context.Background()))
	assert.Equal(t, 1, sw.calls)
	assert.Equal(t, 1, pu.calls)
	assert.Equal(t, now.AddDate(0, 0, -90), pr.cutoff)
}
