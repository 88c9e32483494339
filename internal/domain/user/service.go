package user

import (
	"context"

	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
)

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	List(ctx context.Context, filter ListFilter) (page.Page[UserResponse], error)
	GetByID(ctx context.Context, id int64) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id int64) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (ResetPasswordResponse, error)
}
