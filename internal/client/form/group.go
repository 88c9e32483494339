package form

import (
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
)

// GroupForm is the editable state of an attendance group. The weekly schedule keeps
// each day's enabled flag and shift id apart until the form is submitted.
type GroupForm struct {
	ID             int64
	Name           string
	DefaultShiftID *int64
	Schedule       attendancegroup.WeeklySchedule
	Settings       attendancegroup.Settings
}

func NewGroupForm() GroupForm {
	return GroupForm{
		Schedule: attendancegroup.DefaultWeeklySchedule(),
		Settings: attendancegroup.Settings{
			ShiftType: ptr(attendancegroup.ShiftTypeFixed),
		},
	}
}

// GroupFormFrom loads a fetched group. Days without a stored shift id load as
// disabled.
func GroupFormFrom(g attendancegroup.AttendanceGroupResponse) GroupForm {
	return GroupForm{
		ID:             g.ID,
		Name:           g.Name,
		DefaultShiftID: g.DefaultShiftID,
		Schedule:       attendancegroup.LoadWeeklySchedule(g.WeeklyShiftIDs),
		Settings: attendancegroup.Settings{
			OwnerID:                          g.OwnerID,
			SubOwnerIDs:                      g.SubOwnerIDs,
			Timezone:                         nonZero(g.Timezone),
			RelocationSync:                   ptr(g.RelocationSync),
			MemberTrackingRequired:           nonZero(g.MemberTrackingRequired),
			MemberTrackingRequiredConditions: g.MemberTrackingRequiredConditions,
			MemberTrackingOptional:           nonZero(g.MemberTrackingOptional),
			MemberTrackingOptionalConditions: g.MemberTrackingOptionalConditions,
			ShiftType:                        nonZero(g.ShiftType),
			UsePublicHolidays:                ptr(g.UsePublicHolidays),
			SpecialDays:                      g.SpecialDays,
			RequirePhoto:                     ptr(g.RequirePhoto),
			AllowOffsite:                     ptr(g.AllowOffsite),
			OutOfOfficePolicy:                g.OutOfOfficePolicy,
			BusinessTripPolicy:               g.BusinessTripPolicy,
			PartialLeavePolicy:               g.PartialLeavePolicy,
			RecordOvertime:                   ptr(g.RecordOvertime),
			NonWorkingDayApproval:            ptr(g.NonWorkingDayApproval),
			NonWorkingDayResetTime:           nonZero(g.NonWorkingDayResetTime),
			AllowCorrections:                 ptr(g.AllowCorrections),
			CorrectionTypes:                  g.CorrectionTypes,
		},
	}
}

// Toggle flips a day on or off without touching its remembered shift.
func (f *GroupForm) Toggle(d attendancegroup.Weekday, enabled bool) {
	f.Schedule.SetEnabled(d, enabled)
}

func (f *GroupForm) SetDayShift(d attendancegroup.Weekday, id *int64) {
	f.Schedule.SetShift(d, id)
}

func (f *GroupForm) CanSubmit() bool {
	return strings.TrimSpace(f.Name) != ""
}

func (f *GroupForm) CreateRequest() attendancegroup.CreateAttendanceGroupRequest {
	return attendancegroup.CreateAttendanceGroupRequest{
		Name:           strings.TrimSpace(f.Name),
		DefaultShiftID: f.DefaultShiftID,
		WeeklyShiftIDs: f.Schedule.ShiftIDs(),
		Settings:       f.Settings,
	}
}

func (f *GroupForm) UpdateRequest() attendancegroup.UpdateAttendanceGroupRequest {
	name := strings.TrimSpace(f.Name)
	return attendancegroup.UpdateAttendanceGroupRequest{
		ID:             f.ID,
		Name:           &name,
		DefaultShiftID: f.DefaultShiftID,
		WeeklyShiftIDs: f.Schedule.ShiftIDs(),
		Settings:       f.Settings,
	}
}

func nonZero[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
