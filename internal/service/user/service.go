package user

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxUsernameAttempts = 1000

type userServiceImpl struct {
	userRepo user.UserRepository
	tx       database.Transactor
	hashCost int
}

func NewUserService(userRepo user.UserRepository, tx database.Transactor) user.UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		tx:       tx,
		hashCost: bcrypt.DefaultCost,
	}
}

// Create implements user.UserService. The member is invited: a temporary
// password is set and the account stays inactive until a password reset.
func (s *userServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	newUser := req.ToUser()

	username, err := s.generateUsername(ctx, req.Name)
	if err != nil {
		return user.UserResponse{}, err
	}
	newUser.Username = username
	if newUser.Email == "" {
		newUser.Email = user.TempEmail(username)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, newUser.Email, 0)
	if err != nil {
		return user.UserResponse{}, err
	}
	if exists {
		return user.UserResponse{}, user.ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()[:8]), s.hashCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	newUser.PasswordHash = string(hash)

	var created user.User
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.Create(ctx, newUser)
		if err != nil {
			return err
		}
		if err := s.userRepo.SetRoles(ctx, u.ID, newUser.Roles); err != nil {
			return err
		}
		created, err = s.userRepo.GetByID(ctx, u.ID)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("User invited", "user_id", created.ID, "username", created.Username)
	return user.NewUserResponse(created), nil
}

// List implements user.UserService.
func (s *userServiceImpl) List(ctx context.Context, filter user.ListFilter) (page.Page[user.UserResponse], error) {
	filter.Search = strings.TrimSpace(filter.Search)

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return page.Page[user.UserResponse]{}, err
	}

	content := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		content = append(content, user.NewUserResponse(u))
	}
	return page.New(content, filter.Page, total), nil
}

// GetByID implements user.UserService.
func (s *userServiceImpl) GetByID(ctx context.Context, id int64) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Update implements user.UserService.
func (s *userServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	req.Apply(&existing)
	if req.Email != nil {
		exists, err := s.userRepo.ExistsByEmail(ctx, existing.Email, existing.ID)
		if err != nil {
			return user.UserResponse{}, err
		}
		if exists {
			return user.UserResponse{}, user.ErrUserEmailExists
		}
	}

	var updated user.User
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.Update(ctx, existing); err != nil {
			return err
		}
		if len(req.Roles) > 0 {
			if err := s.userRepo.SetRoles(ctx, existing.ID, existing.Roles); err != nil {
				return err
			}
		}
		updated, err = s.userRepo.GetByID(ctx, existing.ID)
		return err
	})
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}

// Delete implements user.UserService.
func (s *userServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("User deleted", "user_id", id)
	return nil
}

// ResetPassword implements user.UserService. A password is generated when
// requested or when none is given; the account is activated either way.
func (s *userServiceImpl) ResetPassword(ctx context.Context, req user.ResetPasswordRequest) (user.ResetPasswordResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ResetPasswordResponse{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.ID); err != nil {
		return user.ResetPasswordResponse{}, err
	}

	var generated *string
	password := ""
	if req.Password != nil {
		password = *req.Password
	}
	if req.GenerateBySystem || password == "" {
		password = strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		generated = &password
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return user.ResetPasswordResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, req.ID, string(hash), user.StatusActive); err != nil {
		return user.ResetPasswordResponse{}, err
	}

	slog.Info("User password reset", "user_id", req.ID, "generated", generated != nil)
	return user.ResetPasswordResponse{
		Message:           "Password reset successfully",
		GeneratedPassword: generated,
	}, nil
}

func (s *userServiceImpl) generateUsername(ctx context.Context, name string) (string, error) {
	base := user.UsernameBase(name)
	if base == "" {
		base = "user"
	}

	candidate := base
	for counter := 1; counter <= maxUsernameAttempts; counter++ {
		exists, err := s.userRepo.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(counter)
	}
	return "", user.ErrUsernameUnavailable
}
