package attendancegroup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"golang.org/x/sync/errgroup"
)

type attendanceGroupServiceImpl struct {
	groupRepo attendancegroup.AttendanceGroupRepository
	shiftRepo shift.ShiftRepository
}

func NewAttendanceGroupService(groupRepo attendancegroup.AttendanceGroupRepository, shiftRepo shift.ShiftRepository) attendancegroup.AttendanceGroupService {
	return &attendanceGroupServiceImpl{
		groupRepo: groupRepo,
		shiftRepo: shiftRepo,
	}
}

// List implements attendancegroup.AttendanceGroupService.
func (s *attendanceGroupServiceImpl) List(ctx context.Context, filter attendancegroup.ListFilter) (page.Page[attendancegroup.AttendanceGroupResponse], error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Status == "" {
		filter.Status = attendancegroup.StatusActive
	}

	groups, total, err := s.groupRepo.List(ctx, filter)
	if err != nil {
		return page.Page[attendancegroup.AttendanceGroupResponse]{}, err
	}

	content := make([]attendancegroup.AttendanceGroupResponse, 0, len(groups))
	for _, g := range groups {
		content = append(content, attendancegroup.NewAttendanceGroupResponse(g))
	}
	return page.New(content, filter.Page, total), nil
}

// GetByID implements attendancegroup.AttendanceGroupService. Inactive groups are
// reported as not found.
func (s *attendanceGroupServiceImpl) GetByID(ctx context.Context, id int64) (attendancegroup.AttendanceGroupResponse, error) {
	g, err := s.getActive(ctx, id)
	if err != nil {
		return attendancegroup.AttendanceGroupResponse{}, err
	}
	return attendancegroup.NewAttendanceGroupResponse(g), nil
}

// GetWeeklySchedule implements attendancegroup.AttendanceGroupService.
func (s *attendanceGroupServiceImpl) GetWeeklySchedule(ctx context.Context, id int64) (attendancegroup.ResolvedWeek, error) {
	g, err := s.getActive(ctx, id)
	if err != nil {
		return attendancegroup.ResolvedWeek{}, err
	}
	return attendancegroup.Resolve(g.Weekly, g.DefaultShiftID), nil
}

// Create implements attendancegroup.AttendanceGroupService.
func (s *attendanceGroupServiceImpl) Create(ctx context.Context, req attendancegroup.CreateAttendanceGroupRequest) (attendancegroup.AttendanceGroupResponse, error) {
	if err := req.Validate(); err != nil {
		return attendancegroup.AttendanceGroupResponse{}, err
	}

	g := req.ToGroup()
	if g.OwnerID == nil {
		if claims, err := jwt.ClaimsFromContext(ctx); err == nil {
			g.OwnerID = &claims.UserID
		}
	}

	if err := s.checkReferences(ctx, g.Name, 0, g.DefaultShiftID, g.Weekly); err != nil {
		return attendancegroup.AttendanceGroupResponse{}, err
	}

	created, err := s.groupRepo.Create(ctx, g)
	if err != nil {
		return attendancegroup.AttendanceGroupResponse{}, err
	}

	slog.Info("Attendance group created", "group_id", created.ID, "name", created.Name)
	return attendancegroup.NewAttendanceGroupResponse(created), nil
}

// Update implements attendancegroup.AttendanceGroupService.
func (s *attendanceGroupServiceImpl) Update(ctx context.Context, req attendancegroup.UpdateAttendanceGroupRequest) (attendancegroup.AttendanceGroupResponse, error) {
	if err := req.Validate(); err != nil {
		return attendancegroup.AttendanceGroupResponse{}, err
	}

	existing, err := s.getActive(ctx, req.ID)
	if err != nil {
		return attendancegroup.AttendanceGroupResponse{}, err
	}

	req.Apply(&existing)
	if err := s.checkReferences(ctx, existing.Name, existing.ID, existing.DefaultShiftID, existing.Weekly); err != nil {
		return attendancegroup.AttendanceGroupResponse{}, err
	}

	updated, err := s.groupRepo.Update(ctx, existing)
	if err != nil {
		return attendancegroup.AttendanceGroupResponse{}, err
	}
	return attendancegroup.NewAttendanceGroupResponse(updated), nil
}

// Delete implements attendancegroup.AttendanceGroupService. Deleting a group
// that is already inactive reports it as not found.
func (s *attendanceGroupServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.getActive(ctx, id); err != nil {
		return err
	}
	if err := s.groupRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, attendancegroup.ErrAttendanceGroupNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete attendance group: %w", err)
	}
	slog.Info("Attendance group deleted", "group_id", id)
	return nil
}

func (s *attendanceGroupServiceImpl) getActive(ctx context.Context, id int64) (attendancegroup.AttendanceGroup, error) {
	g, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return attendancegroup.AttendanceGroup{}, err
	}
	if g.Status != attendancegroup.StatusActive {
		return attendancegroup.AttendanceGroup{}, attendancegroup.ErrAttendanceGroupNotFound
	}
	return g, nil
}

// checkReferences verifies the name is free and every referenced shift exists.
// The three lookups are independent and run concurrently.
func (s *attendanceGroupServiceImpl) checkReferences(ctx context.Context, name string, excludeID int64, defaultShiftID *int64, weekly attendancegroup.WeeklyShiftIDs) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		exists, err := s.groupRepo.ExistsByName(gCtx, name, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return attendancegroup.ErrDuplicateGroupName
		}
		return nil
	})

	if defaultShiftID != nil {
		g.Go(func() error {
			if _, err := s.shiftRepo.GetByID(gCtx, *defaultShiftID); err != nil {
				if errors.Is(err, shift.ErrShiftNotFound) {
					return attendancegroup.ErrDefaultShiftNotFound
				}
				return err
			}
			return nil
		})
	}

	if ids := weekly.IDs(); len(ids) > 0 {
		g.Go(func() error {
			found, err := s.shiftRepo.GetByIDs(gCtx, ids)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if _, ok := found[id]; !ok {
					return fmt.Errorf("%w: %d", attendancegroup.ErrWeeklyShiftNotFound, id)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
