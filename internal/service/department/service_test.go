package department

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/department"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeptRepo struct {
	depts  map[int64]department.Department
	nextID int64
}

func (f *fakeDeptRepo) Create(ctx context.Context, d department.Department) (department.Department, error) {
	f.nextID++
	d.ID = f.nextID
	f.depts[d.ID] = d
	return d, nil
}

func (f *fakeDeptRepo) GetByID(ctx context.Context, id int64) (department.Department, error) {
	d, ok := f.depts[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (f *fakeDeptRepo) List(ctx context.Context) ([]department.Department, error) {
	var out []department.Department
	for _, d := range f.depts {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDeptRepo) Update(ctx context.Context, d department.Department) (department.Department, error) {
	f.depts[d.ID] = d
	return d, nil
}

func (f *fakeDeptRepo) Delete(ctx context.Context, id int64) error {
	delete(f.depts, id)
	return nil
}

func (f *fakeDeptRepo) HasChildren(ctx context.Context, id int64) (bool, error) {
	for _, d := range f.depts {
		if d.ParentID != nil && *d.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDeptRepo) ExistsByName(ctx context.Context, name string, parentID *int64, excludeID int64) (bool, error) {
	for _, d := range f.depts {
		sameParent := (d.ParentID == nil && parentID == nil) || (d.ParentID != nil && parentID != nil && *d.ParentID == *parentID)
		if strings.EqualFold(d.Name, name) && sameParent && d.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func TestDepartmentService(t *testing.T) {
	repo := &fakeDeptRepo{depts: map[int64]department.Department{}}
	svc := NewDepartmentService(repo)
	ctx := context.Background()

	eng, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)
	be, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Backend", ParentID: &eng.ID})
	require.NoError(t, err)

	_, err = svc.Create(ctx, department.CreateDepartmentRequest{Name: "backend", ParentID: &eng.ID})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	missing := int64(404)
	_, err = svc.Create(ctx, department.CreateDepartmentRequest{Name: "Ghost", ParentID: &missing})
	assert.ErrorIs(t, err, department.ErrParentNotFound)

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Backend", tree[0].Children[0].Name)

	_, err = svc.Update(ctx, department.UpdateDepartmentRequest{ID: eng.ID, ParentID: &be.ID})
	assert.ErrorIs(t, err, department.ErrDepartmentCycle)

	assert.ErrorIs(t, svc.Delete(ctx, eng.ID), department.ErrDepartmentHasChildren)
	require.NoError(t, svc.Delete(ctx, be.ID))
	require.NoError(t, svc.Delete(ctx, eng.ID))
	assert.ErrorIs(t, svc.Delete(ctx, eng.ID), department.ErrDepartmentNotFound)
}
