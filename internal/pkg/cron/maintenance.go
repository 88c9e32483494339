package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Sweeper is anything that can drop its own expired state.
type Sweeper interface {
	Sweep(ctx context.Context) error
}

type auditPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type revokedPurger interface {
	PurgeRevoked(ctx context.Context) error
}

// MaintenanceJobs keeps the in-memory auth state and the login audit trail bounded.
type MaintenanceJobs struct {
	limiter        Sweeper
	tokens         revokedPurger
	audits         auditPruner
	auditRetention time.Duration
	now            func() time.Time
}

func NewMaintenanceJobs(limiter Sweeper, tokens revokedPurger, audits auditPruner, auditRetention time.Duration) *MaintenanceJobs {
	return &MaintenanceJobs{
		limiter:        limiter,
		tokens:         tokens,
		audits:         audits,
		auditRetention: auditRetention,
		now:            time.Now,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_login_rate_limits", 5*time.Minute, j.SweepRateLimits)
	scheduler.AddJob("purge_revoked_tokens", 30*time.Minute, j.PurgeRevokedTokens)
	if j.audits != nil && j.auditRetention > 0 {
		scheduler.AddJob("prune_login_audits", 24*time.Hour, j.PruneLoginAudits)
	}
}

func (j *MaintenanceJobs) SweepRateLimits(ctx context.Context) error {
	return j.limiter.Sweep(ctx)
}

func (j *MaintenanceJobs) PurgeRevokedTokens(ctx context.Context) error {
	return j.tokens.PurgeRevoked(ctx)
}

func (j *MaintenanceJobs) PruneLoginAudits(ctx context.Context) error {
	cutoff := j.now().Add(-j.auditRetention)
	deleted, err := j.audits.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune login audits: %w", err)
	}
	slog.Info("Cron: Pruned login audits", "count", deleted, "cutoff", cutoff)
	return nil
}
