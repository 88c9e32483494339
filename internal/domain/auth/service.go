package auth

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, client ClientInfo) (LoginResponse, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
	Me(ctx context.Context) (user.UserResponse, error)
}
