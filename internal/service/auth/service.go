package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// RateLimiter throttles login attempts per client address.
type RateLimiter interface {
	Allow(key string) (bool, time.Duration)
	Reset(key string)
}

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	auditRepo  auth.LoginAuditRepository
	jwtService jwt.Service
	limiter    RateLimiter
}

func NewAuthService(userRepo user.UserRepository, auditRepo auth.LoginAuditRepository, jwtService jwt.Service, limiter RateLimiter) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		jwtService: jwtService,
		limiter:    limiter,
	}
}

// Login implements auth.AuthService. Every outcome other than a rate limit
// rejection is audited; unknown users, wrong passwords and inactive accounts all
// report ErrInvalidCredentials.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, client auth.ClientInfo) (auth.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	if ok, retryAfter := a.limiter.Allow(client.IPAddress); !ok {
		slog.Warn("Login rate limit exceeded", "ip", client.IPAddress, "retry_after", retryAfter)
		return auth.LoginResponse{}, &auth.RateLimitError{RetryAfter: retryAfter}
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			a.audit(ctx, req.Email, nil, client, auth.ReasonUserNotFound)
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		a.audit(ctx, req.Email, &userData.ID, client, auth.ReasonInvalidPassword)
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.IsActive() {
		a.audit(ctx, req.Email, &userData.ID, client, auth.ReasonUserInactive)
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(userData.ID, userData.Email, userData.Roles, req.RememberMe)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	a.limiter.Reset(client.IPAddress)
	a.audit(ctx, req.Email, &userData.ID, client, "")
	if err := a.userRepo.UpdateLastLogin(ctx, userData.ID); err != nil {
		slog.Warn("Failed to record last login", "user_id", userData.ID, "error", err)
	}

	roles := make([]string, 0, len(userData.Roles))
	for _, r := range userData.Roles {
		roles = append(roles, string(r))
	}

	return auth.LoginResponse{
		Token: token,
		User: auth.LoginUser{
			ID:        userData.ID,
			Email:     userData.Email,
			FirstName: userData.FirstName,
			LastName:  userData.LastName,
			Roles:     roles,
		},
		ExpiresAt: expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.jwtService.RevokeToken(token, expiresAt)
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (user.UserResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(userData), nil
}

func (a *AuthServiceImpl) audit(ctx context.Context, email string, userID *int64, client auth.ClientInfo, reason auth.FailureReason) {
	entry := auth.LoginAudit{
		Email:       email,
		UserID:      userID,
		Success:     reason == "",
		IPAddress:   client.IPAddress,
		UserAgent:   client.UserAgent,
		AttemptedAt: time.Now(),
	}
	if reason != "" {
		entry.Reason = &reason
		slog.Info("Login failed", "email", email, "ip", client.IPAddress, "reason", reason)
	}
	if err := a.auditRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to write login audit", "email", email, "error", err)
	}
}
