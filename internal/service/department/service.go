package department

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/department"
)

type departmentServiceImpl struct {
	deptRepo department.DepartmentRepository
}

func NewDepartmentService(deptRepo department.DepartmentRepository) department.DepartmentService {
	return &departmentServiceImpl{deptRepo: deptRepo}
}

func (s *departmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	depts, err := s.deptRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]department.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, department.NewDepartmentResponse(d))
	}
	return out, nil
}

func (s *departmentServiceImpl) Tree(ctx context.Context) ([]department.DepartmentResponse, error) {
	depts, err := s.deptRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return department.BuildTree(depts), nil
}

func (s *departmentServiceImpl) GetByID(ctx context.Context, id int64) (department.DepartmentResponse, error) {
	d, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(d), nil
}

func (s *departmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.ParentID != nil {
		if _, err := s.deptRepo.GetByID(ctx, *req.ParentID); err != nil {
			return department.DepartmentResponse{}, parentErr(err)
		}
	}
	if err := s.ensureNameAvailable(ctx, req.Name, req.ParentID, 0); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.deptRepo.Create(ctx, department.Department{Name: req.Name, ParentID: req.ParentID})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	slog.Info("Department created", "department_id", created.ID, "name", created.Name)
	return department.NewDepartmentResponse(created), nil
}

// Update renames or moves a department. A nil parentId moves it to the top level.
func (s *departmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	existing, err := s.deptRepo.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	existing.ParentID = req.ParentID

	if existing.ParentID != nil {
		if _, err := s.deptRepo.GetByID(ctx, *existing.ParentID); err != nil {
			return department.DepartmentResponse{}, parentErr(err)
		}
		all, err := s.deptRepo.List(ctx)
		if err != nil {
			return department.DepartmentResponse{}, err
		}
		if department.IsDescendant(all, existing.ID, *existing.ParentID) {
			return department.DepartmentResponse{}, department.ErrDepartmentCycle
		}
	}
	if err := s.ensureNameAvailable(ctx, existing.Name, existing.ParentID, existing.ID); err != nil {
		return department.DepartmentResponse{}, err
	}

	updated, err := s.deptRepo.Update(ctx, existing)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(updated), nil
}

func (s *departmentServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.deptRepo.GetByID(ctx, id); err != nil {
		return err
	}
	hasChildren, err := s.deptRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return department.ErrDepartmentHasChildren
	}
	return s.deptRepo.Delete(ctx, id)
}

func (s *departmentServiceImpl) ensureNameAvailable(ctx context.Context, name string, parentID *int64, excludeID int64) error {
	exists, err := s.deptRepo.ExistsByName(ctx, name, parentID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return department.ErrDepartmentNameExists
	}
	return nil
}

func parentErr(err error) error {
	if errors.Is(err, department.ErrDepartmentNotFound) {
		return department.ErrParentNotFound
	}
	return err
}
