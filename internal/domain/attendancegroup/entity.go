package attendancegroup

import "time"

type AttendanceGroup struct {
	ID             int64
	Name           string
	OwnerID        *int64
	SubOwnerIDs    []int64
	Timezone       string
	RelocationSync bool

	MemberTrackingRequired           MemberTrackingMode
	MemberTrackingRequiredConditions *string
	MemberTrackingOptional           MemberTrackingMode
	MemberTrackingOptionalConditions *string

	ShiftType      ShiftType
	DefaultShiftID *int64
	Weekly         WeeklyShiftIDs

	UsePublicHolidays bool
	SpecialDays       []string

	RequirePhoto           bool
	AllowOffsite           bool
	OutOfOfficePolicy      *AttendancePolicy
	BusinessTripPolicy     *AttendancePolicy
	PartialLeavePolicy     *LeaveAttendancePolicy
	RecordOvertime         bool
	NonWorkingDayApproval  bool
	NonWorkingDayResetTime string
	AllowCorrections       bool
	CorrectionTypes        []string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Read-only, filled by the repository.
	DefaultShiftName  *string
	DefaultShiftStart *string
	DefaultShiftEnd   *string
	MemberCount       int
}

const (
	DefaultTimezone               = "GMT+07:00"
	DefaultNonWorkingDayResetTime = "04:00"
)

// New returns a group carrying the default settings.
func New() AttendanceGroup {
	return AttendanceGroup{
		Timezone:               DefaultTimezone,
		MemberTrackingRequired: MemberTrackingNone,
		MemberTrackingOptional: MemberTrackingNone,
		NonWorkingDayResetTime: DefaultNonWorkingDayResetTime,
		AllowCorrections:       true,
		SubOwnerIDs:            []int64{},
		SpecialDays:            []string{},
		CorrectionTypes:        []string{},
		Status:                 StatusActive,
	}
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// ShiftType classifies how shifts are assigned to the members of a group.
type ShiftType string

const (
	ShiftTypeFixed     ShiftType = "FIXED"
	ShiftTypeScheduled ShiftType = "SCHEDULED"
	ShiftTypeFree      ShiftType = "FREE"
)

func (t ShiftType) Label() string {
	switch t {
	case ShiftTypeFixed:
		return "Fixed Shift"
	case ShiftTypeScheduled:
		return "Scheduled Shift"
	case ShiftTypeFree:
		return "Free Shift"
	}
	return string(t)
}

type MemberTrackingMode string

const (
	MemberTrackingAll    MemberTrackingMode = "ALL"
	MemberTrackingCustom MemberTrackingMode = "CUSTOM"
	MemberTrackingNone   MemberTrackingMode = "NONE"
)

// AttendancePolicy governs clocking during out-of-office periods and business trips.
type AttendancePolicy string

const (
	PolicyNoClock     AttendancePolicy = "NO_CLOCK"
	PolicyShiftTimes  AttendancePolicy = "SHIFT_TIMES"
	PolicyBeforeAfter AttendancePolicy = "BEFORE_AFTER"
)

// PolicyContext names the absence an AttendancePolicy applies to.
type PolicyContext string

const (
	ContextOutOfOffice  PolicyContext = "out-of-office"
	ContextBusinessTrip PolicyContext = "business trip"
)

func (p AttendancePolicy) Label(ctx PolicyContext) string {
	switch p {
	case PolicyNoClock:
		return "No clock in/out required for " + string(ctx)
	case PolicyShiftTimes:
		return "Record attendance at start and end times of each shift"
	case PolicyBeforeAfter:
		if ctx == ContextBusinessTrip {
			return "Record attendance before leaving and upon returning from a business trip"
		}
		return "Record attendance before leaving and upon returning from an out-of-office period"
	}
	return string(p)
}

type LeaveAttendancePolicy string

const (
	LeavePolicyNoClock       LeaveAttendancePolicy = "NO_CLOCK"
	LeavePolicyOnLeaveReturn LeaveAttendancePolicy = "ON_LEAVE_RETURN"
)

func (p LeaveAttendancePolicy) Label() string {
	switch p {
	case LeavePolicyNoClock:
		return "No clock in/out required for leave"
	case LeavePolicyOnLeaveReturn:
		return "Clock in/out required upon leaving or returning for leave"
	}
	return string(p)
}
