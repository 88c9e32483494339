package attendancegroup

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGroupRepo struct {
	mu     sync.Mutex
	groups map[int64]attendancegroup.AttendanceGroup
	nextID int64
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: map[int64]attendancegroup.AttendanceGroup{}}
}

func (f *fakeGroupRepo) Create(ctx context.Context, g attendancegroup.AttendanceGroup) (attendancegroup.AttendanceGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	g.ID = f.nextID
	f.groups[g.ID] = g
	return g, nil
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id int64) (attendancegroup.AttendanceGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[id]
	if !ok {
		return attendancegroup.AttendanceGroup{}, attendancegroup.ErrAttendanceGroupNotFound
	}
	return g, nil
}

func (f *fakeGroupRepo) List(ctx context.Context, filter attendancegroup.ListFilter) ([]attendancegroup.AttendanceGroup, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendancegroup.AttendanceGroup
	for _, g := range f.groups {
		if g.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, g)
	}
	return out, int64(len(out)), nil
}

func (f *fakeGroupRepo) Update(ctx context.Context, g attendancegroup.AttendanceGroup) (attendancegroup.AttendanceGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[g.ID] = g
	return g, nil
}

func (f *fakeGroupRepo) SoftDelete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[id]
	if !ok {
		return attendancegroup.ErrAttendanceGroupNotFound
	}
	g.Status = attendancegroup.StatusInactive
	f.groups[id] = g
	return nil
}

func (f *fakeGroupRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.groups {
		if strings.EqualFold(g.Name, name) && g.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeShiftRepo struct {
	shift.ShiftRepository
	shifts map[int64]shift.Shift
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id int64) (shift.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeShiftRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]shift.Shift, error) {
	out := map[int64]shift.Shift{}
	for _, id := range ids {
		if s, ok := f.shifts[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func id(v int64) *int64 { return &v }

func newService() (attendancegroup.AttendanceGroupService, *fakeGroupRepo) {
	shifts := &fakeShiftRepo{shifts: map[int64]shift.Shift{
		1: {ID: 1, Name: "Regular", StartTime: "09:00", EndTime: "18:00"},
		2: {ID: 2, Name: "Early", StartTime: "07:00", EndTime: "16:00"},
	}}
	groups := newFakeGroupRepo()
	return NewAttendanceGroupService(groups, shifts), groups
}

func TestCreate_DefaultsOwnerToCaller(t *testing.T) {
	svc, _ := newService()
	ctx := jwt.NewContext(context.Background(), jwt.Claims{UserID: 5, Roles: []user.Role{user.RoleHRAdmin}})

	resp, err := svc.Create(ctx, attendancegroup.CreateAttendanceGroupRequest{
		Name:           "Head Office",
		DefaultShiftID: id(1),
		WeeklyShiftIDs: attendancegroup.WeeklyShiftIDs{Monday: id(1), Saturday: id(2)},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.OwnerID)
	assert.Equal(t, int64(5), *resp.OwnerID)
	assert.Equal(t, attendancegroup.ShiftTypeFixed, resp.ShiftType)
}

func TestCreate_ReferenceErrors(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, attendancegroup.CreateAttendanceGroupRequest{Name: "A", DefaultShiftID: id(99)})
	assert.ErrorIs(t, err, attendancegroup.ErrDefaultShiftNotFound)

	_, err = svc.Create(ctx, attendancegroup.CreateAttendanceGroupRequest{
		Name:           "B",
		WeeklyShiftIDs: attendancegroup.WeeklyShiftIDs{Tuesday: id(42)},
	})
	assert.ErrorIs(t, err, attendancegroup.ErrWeeklyShiftNotFound)

	_, err = svc.Create(ctx, attendancegroup.CreateAttendanceGroupRequest{Name: "Head Office"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, attendancegroup.CreateAttendanceGroupRequest{Name: "HEAD OFFICE"})
	assert.ErrorIs(t, err, attendancegroup.ErrDuplicateGroupName)
}

func TestUpdate_AllowsOwnNameAndOverwritesWeek(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, attendancegroup.CreateAttendanceGroupRequest{
		Name:           "Head Office",
		DefaultShiftID: id(1),
		WeeklyShiftIDs: attendancegroup.WeeklyShiftIDs{Monday: id(1), Tuesday: id(1)},
	})
	require.NoError(t, err)

	name := "head office"
	updated, err := svc.Update(ctx, attendancegroup.UpdateAttendanceGroupRequest{
		ID:             created.ID,
		Name:           &name,
		WeeklyShiftIDs: attendancegroup.WeeklyShiftIDs{Monday: id(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, "head office", updated.Name)
	assert.Nil(t, updated.DefaultShiftID)

	stored := repo.groups[created.ID]
	assert.Equal(t, int64(2), *stored.Weekly.Monday)
	assert.Nil(t, stored.Weekly.Tuesday)
}

func TestGetByID_InactiveIsNotFound(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, attendancegroup.CreateAttendanceGroupRequest{Name: "Warehouse"})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, attendancegroup.ErrAttendanceGroupNotFound)

	list, err := svc.List(ctx, attendancegroup.ListFilter{Page: page.Request{Size: 20}})
	require.NoError(t, err)
	assert.True(t, list.Empty)
}

func TestUpdateAndDelete_InactiveIsNotFound(t *testing.T) {
	svc, groups := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, attendancegroup.CreateAttendanceGroupRequest{Name: "Warehouse"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	name := "Warehouse 2"
	_, err = svc.Update(ctx, attendancegroup.UpdateAttendanceGroupRequest{ID: created.ID, Name: &name})
	assert.ErrorIs(t, err, attendancegroup.ErrAttendanceGroupNotFound)
	assert.Equal(t, "Warehouse", groups.groups[created.ID].Name)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, attendancegroup.ErrAttendanceGroupNotFound)
}

func TestGetWeeklySchedule_FlagsAmbiguousDays(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, attendancegroup.CreateAttendanceGroupRequest{
		Name:           "Store",
		DefaultShiftID: id(1),
		WeeklyShiftIDs: attendancegroup.WeeklyShiftIDs{
			Monday: id(1), Tuesday: id(1), Wednesday: id(1), Thursday: id(1), Friday: id(2),
		},
	})
	require.NoError(t, err)

	week, err := svc.GetWeeklySchedule(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []attendancegroup.Weekday{attendancegroup.Saturday, attendancegroup.Sunday}, week.AmbiguousDays())
	assert.Len(t, week.Days, 7)
}
