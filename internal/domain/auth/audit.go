package auth

import (
	"context"
	"time"
)

type FailureReason string

const (
	ReasonUserNotFound    FailureReason = "USER_NOT_FOUND"
	ReasonInvalidPassword FailureReason = "INVALID_PASSWORD"
	ReasonUserInactive    FailureReason = "USER_INACTIVE"
)

// LoginAudit records one login attempt.
type LoginAudit struct {
	ID          int64
	Email       string
	UserID      *int64
	Success     bool
	IPAddress   string
	UserAgent   string
	Reason      *FailureReason
	AttemptedAt time.Time
}

type LoginAuditRepository interface {
	Create(ctx context.Context, audit LoginAudit) error
	CountRecentFailures(ctx context.Context, email string, since time.Time) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
