package form

import (
	"testing"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShiftForm_Defaults(t *testing.T) {
	f := NewShiftForm()
	assert.Equal(t, "09:00", f.Draft.StartTime)
	assert.Equal(t, "18:00", f.Draft.EndTime)
	assert.Equal(t, shift.ShiftTypeFixedTime, f.Draft.ShiftType)
	assert.Equal(t, shift.DateTypeWorkDays, f.Draft.DateType)
	assert.False(t, f.CanSubmit())

	h, err := f.Preview()
	require.NoError(t, err)
	assert.Equal(t, 540, h.TotalMinutes)
}

func TestShiftForm_SetIntClamps(t *testing.T) {
	f := NewShiftForm()

	tests := []struct {
		field IntField
		in    int
		want  int
	}{
		{ClockInEarlyMinutes, 900, 480},
		{ClockOutLateMinutes, 900, 900},
		{ClockOutLateMinutes, 2000, 960},
		{FlexLateHours, -3, 0},
		{FlexEarlyMinutes, 75, 59},
		{BreakDurationMinutes, 300, 240},
	}
	for _, tt := range tests {
		got, ok := f.SetInt(tt.field, tt.in)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, tt.field)
		assert.Equal(t, tt.want, f.Int(tt.field), tt.field)
	}

	_, ok := f.SetInt(IntField("bogus"), 1)
	assert.False(t, ok)
}

func TestShiftForm_CanSubmitOnlyChecksName(t *testing.T) {
	f := NewShiftForm()
	f.Draft.Name = "   "
	assert.False(t, f.CanSubmit())

	f.Draft.Name = "Night"
	f.Draft.StartTime = "nonsense"
	assert.True(t, f.CanSubmit())

	_, err := f.Preview()
	assert.ErrorIs(t, err, shift.ErrInvalidClock)
}

func TestShiftForm_PreviewOvernightWithBreak(t *testing.T) {
	f := NewShiftForm()
	f.Draft.StartTime = "22:00"
	f.Draft.EndTime = "06:00"
	f.Draft.IsNextDayEnd = true
	f.Draft.HasBreaks = true
	f.SetInt(BreakDurationMinutes, 60)

	h, err := f.Preview()
	require.NoError(t, err)
	assert.Equal(t, 420, h.TotalMinutes)
	assert.Equal(t, "7h 0m", h.String())
}

func TestShiftForm_UpdateRequestIsComplete(t *testing.T) {
	code := "NS"
	f := ShiftFormFrom(shift.ShiftResponse{
		ID:                   4,
		Code:                 &code,
		Name:                 " Night ",
		StartTime:            "22:00",
		EndTime:              "06:00",
		IsNextDayEnd:         true,
		ShiftType:            shift.ShiftTypeFlextime,
		DateType:             shift.DateTypeWorkDays,
		BreakDurationMinutes: 30,
		WorkingHoursMinutes:  1,
	})

	req := f.UpdateRequest()
	require.NoError(t, req.Validate())
	assert.Equal(t, int64(4), req.ID)
	assert.Equal(t, "Night", *req.Name)
	assert.Equal(t, "22:00", *req.StartTime)
	require.NotNil(t, req.IsNextDayEnd)
	assert.True(t, *req.IsNextDayEnd)
	require.NotNil(t, req.HasBreaks)
	assert.False(t, *req.HasBreaks)
	require.NotNil(t, req.ClockInEarlyMinutes)
	require.NotNil(t, req.BreakDurationMinutes)
	assert.Equal(t, 30, *req.BreakDurationMinutes)
	assert.Equal(t, shift.ShiftTypeFlextime, *req.ShiftType)
}

func TestGroupForm_NewDefaults(t *testing.T) {
	f := NewGroupForm()
	assert.Equal(t, []attendancegroup.Weekday{
		attendancegroup.Monday, attendancegroup.Tuesday, attendancegroup.Wednesday,
		attendancegroup.Thursday, attendancegroup.Friday,
	}, f.Schedule.EnabledDays())

	req := f.CreateRequest()
	assert.Empty(t, req.WeeklyShiftIDs.IDs())
	assert.Equal(t, attendancegroup.ShiftTypeFixed, *req.ShiftType)
}

func TestGroupForm_ToggleKeepsShift(t *testing.T) {
	seven := int64(7)
	f := NewGroupForm()
	f.Name = "Warehouse"
	f.SetDayShift(attendancegroup.Monday, &seven)

	f.Toggle(attendancegroup.Monday, false)
	assert.Nil(t, f.CreateRequest().Monday, "disabled days submit nil")
	require.NotNil(t, f.Schedule[attendancegroup.Monday].ShiftID)

	f.Toggle(attendancegroup.Monday, true)
	require.NotNil(t, f.CreateRequest().Monday)
	assert.Equal(t, int64(7), *f.CreateRequest().Monday)
}

func TestGroupFormFrom_LoadsOverridesOnly(t *testing.T) {
	three, five := int64(3), int64(5)
	resp := attendancegroup.AttendanceGroupResponse{
		ID:             9,
		Name:           "Head Office",
		DefaultShiftID: &three,
		Timezone:       attendancegroup.DefaultTimezone,
		WeeklyShiftIDs: attendancegroup.WeeklyShiftIDs{Tuesday: &five},
	}

	f := GroupFormFrom(resp)
	assert.Equal(t, []attendancegroup.Weekday{attendancegroup.Tuesday}, f.Schedule.EnabledDays())

	req := f.UpdateRequest()
	require.NoError(t, req.Validate())
	assert.Equal(t, int64(9), req.ID)
	assert.Equal(t, &three, req.DefaultShiftID)
	assert.Equal(t, int64(5), *req.Tuesday)
	assert.Nil(t, req.Monday)
	assert.Equal(t, attendancegroup.DefaultTimezone, *req.Timezone)
}
