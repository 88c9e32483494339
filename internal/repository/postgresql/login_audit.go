package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/database"
)

type loginAuditRepositoryImpl struct {
	db *database.DB
}

func NewLoginAuditRepository(db *database.DB) auth.LoginAuditRepository {
	return &loginAuditRepositoryImpl{db: db}
}

func (r *loginAuditRepositoryImpl) Create(ctx context.Context, a auth.LoginAudit) error {
	q := GetQuerier(ctx, r.db)

	attemptedAt := a.AttemptedAt
	if attemptedAt.IsZero() {
		attemptedAt = time.Now()
	}
	_, err := q.Exec(ctx, `
		INSERT INTO login_audits (email, user_id, success, ip_address, user_agent, reason, attempted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.Email, a.UserID, a.Success, a.IPAddress, a.UserAgent, a.Reason, attemptedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create login audit: %w", err)
	}
	return nil
}

func (r *loginAuditRepositoryImpl) CountRecentFailures(ctx context.Context, email string, since time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM login_audits WHERE email = $1 AND success = FALSE AND attempted_at >= $2`,
		email, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count login failures: %w", err)
	}
	return count, nil
}

func (r *loginAuditRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM login_audits WHERE attempted_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete login audits: %w", err)
	}
	return tag.RowsAffected(), nil
}
