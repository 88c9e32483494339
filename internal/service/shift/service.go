package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
)

type shiftServiceImpl struct {
	shiftRepo shift.ShiftRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository) shift.ShiftService {
	return &shiftServiceImpl{shiftRepo: shiftRepo}
}

// List implements shift.ShiftService.
func (s *shiftServiceImpl) List(ctx context.Context, filter shift.ListFilter) (page.Page[shift.ShiftResponse], error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Status == "" {
		filter.Status = shift.StatusActive
	}

	shifts, total, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return page.Page[shift.ShiftResponse]{}, err
	}

	content := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		content = append(content, shift.NewShiftResponse(sh))
	}
	return page.New(content, filter.Page, total), nil
}

// GetByID implements shift.ShiftService.
func (s *shiftServiceImpl) GetByID(ctx context.Context, id int64) (shift.ShiftResponse, error) {
	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.NewShiftResponse(sh), nil
}

// Create implements shift.ShiftService.
func (s *shiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	newShift := req.ToShift()
	if err := s.ensureCodeAvailable(ctx, newShift.Code, 0); err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := newShift.RecomputeWorkingHours(); err != nil {
		return shift.ShiftResponse{}, err
	}

	if claims, err := jwt.ClaimsFromContext(ctx); err == nil {
		newShift.CreatedBy = &claims.UserID
		newShift.UpdatedBy = &claims.UserID
	}

	created, err := s.shiftRepo.Create(ctx, newShift)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	slog.Info("Shift created", "shift_id", created.ID, "name", created.Name, "working_minutes", created.WorkingHoursMinutes)
	return shift.NewShiftResponse(created), nil
}

// Update implements shift.ShiftService.
func (s *shiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	req.Apply(&existing)
	if req.Code != nil {
		if err := s.ensureCodeAvailable(ctx, existing.Code, existing.ID); err != nil {
			return shift.ShiftResponse{}, err
		}
	}
	if err := existing.RecomputeWorkingHours(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing.UpdatedBy = nil
	if claims, err := jwt.ClaimsFromContext(ctx); err == nil {
		existing.UpdatedBy = &claims.UserID
	}

	updated, err := s.shiftRepo.Update(ctx, existing)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.NewShiftResponse(updated), nil
}

// Delete implements shift.ShiftService.
func (s *shiftServiceImpl) Delete(ctx context.Context, id int64) error {
	var updatedBy *int64
	if claims, err := jwt.ClaimsFromContext(ctx); err == nil {
		updatedBy = &claims.UserID
	}

	if err := s.shiftRepo.SoftDelete(ctx, id, updatedBy); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	slog.Info("Shift deleted", "shift_id", id)
	return nil
}

func (s *shiftServiceImpl) ensureCodeAvailable(ctx context.Context, code *string, excludeID int64) error {
	if code == nil || strings.TrimSpace(*code) == "" {
		return nil
	}
	exists, err := s.shiftRepo.ExistsByCode(ctx, *code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shift.ErrDuplicateShiftCode
	}
	return nil
}
