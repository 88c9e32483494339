package shift

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShiftRepo struct {
	shifts map[int64]shift.Shift
	nextID int64
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: map[int64]shift.Shift{}}
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	f.nextID++
	s.ID = f.nextID
	f.shifts[s.ID] = s
	return s, nil
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

func (f *fakeShiftRepo) List(ctx context.Context, filter shift.ListFilter) ([]shift.Shift, int64, error) {
	var out []shift.Shift
	for _, s := range f.shifts {
		if filter.Search != "" {
			if s.Status == shift.StatusActive && strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Search)) {
				out = append(out, s)
			}
			continue
		}
		if s.Status == filter.Status {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	if _, ok := f.shifts[s.ID]; !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	f.shifts[s.ID] = s
	return s, nil
}

func (f *fakeShiftRepo) SoftDelete(ctx context.Context, id int64, updatedBy *int64) error {
	s, ok := f.shifts[id]
	if !ok {
		return shift.ErrShiftNotFound
	}
	s.Status = shift.StatusInactive
	s.UpdatedBy = updatedBy
	f.shifts[id] = s
	return nil
}

func (f *fakeShiftRepo) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	for _, s := range f.shifts {
		if s.Code != nil && *s.Code == code && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func ptr[T any](v T) *T { return &v }

func hrContext() context.Context {
	return jwt.NewContext(context.Background(), jwt.Claims{UserID: 11, Email: "hr@example.com", Roles: []user.Role{user.RoleHRAdmin}})
}

func TestCreate_ComputesWorkingMinutes(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)

	resp, err := svc.Create(hrContext(), shift.CreateShiftRequest{
		Name:                 "Night",
		StartTime:            "22:00",
		EndTime:              "06:00",
		IsNextDayEnd:         ptr(true),
		HasBreaks:            ptr(true),
		BreakDurationMinutes: ptr(30),
	})
	require.NoError(t, err)

	assert.Equal(t, 450, resp.WorkingHoursMinutes)
	assert.Equal(t, shift.StatusActive, resp.Status)
	require.NotNil(t, resp.CreatedBy)
	assert.Equal(t, int64(11), *resp.CreatedBy)
	assert.Equal(t, 60, resp.ClockInEarlyMinutes)
}

func TestCreate_RejectsInvalid(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo())

	_, err := svc.Create(context.Background(), shift.CreateShiftRequest{Name: " ", StartTime: "25:00", EndTime: "18:00"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "name")
	assert.Contains(t, errs.ToMap(), "startTime")
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)

	req := shift.CreateShiftRequest{Name: "Regular", Code: ptr("REG"), StartTime: "09:00", EndTime: "18:00"}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, shift.ErrDuplicateShiftCode)
}

func TestUpdate_PartialAndRecomputed(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)

	created, err := svc.Create(context.Background(), shift.CreateShiftRequest{Name: "Regular", StartTime: "09:00", EndTime: "18:00"})
	require.NoError(t, err)
	assert.Equal(t, 540, created.WorkingHoursMinutes)

	updated, err := svc.Update(hrContext(), shift.UpdateShiftRequest{ID: created.ID, EndTime: ptr("17:00")})
	require.NoError(t, err)
	assert.Equal(t, "Regular", updated.Name)
	assert.Equal(t, "09:00", updated.StartTime)
	assert.Equal(t, 480, updated.WorkingHoursMinutes)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, int64(11), *updated.UpdatedBy)

	_, err = svc.Update(context.Background(), shift.UpdateShiftRequest{ID: 404, Name: ptr("x")})
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

func TestUpdate_ClampsNegativeNetTime(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)

	created, err := svc.Create(context.Background(), shift.CreateShiftRequest{Name: "Short", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), shift.UpdateShiftRequest{
		ID:                   created.ID,
		HasBreaks:            ptr(true),
		BreakDurationMinutes: ptr(120),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.WorkingHoursMinutes)
}

func TestDelete_HidesFromDefaultList(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, shift.CreateShiftRequest{Name: "Alpha", StartTime: "08:00", EndTime: "17:00"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, shift.CreateShiftRequest{Name: "Beta", StartTime: "08:00", EndTime: "17:00"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(hrContext(), a.ID))

	list, err := svc.List(ctx, shift.ListFilter{Page: page.Request{Size: 20}})
	require.NoError(t, err)
	require.Len(t, list.Content, 1)
	assert.Equal(t, "Beta", list.Content[0].Name)

	found, err := svc.List(ctx, shift.ListFilter{Search: " alp ", Page: page.Request{Size: 20}})
	require.NoError(t, err)
	assert.True(t, found.Empty)

	assert.ErrorIs(t, svc.Delete(ctx, 999), shift.ErrShiftNotFound)
}
