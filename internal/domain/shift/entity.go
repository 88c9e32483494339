package shift

import "time"

type Shift struct {
	ID          int64
	Code        *string
	Name        string
	Description *string
	ShiftType   ShiftType
	DateType    DateType

	StartTime    string
	EndTime      string
	IsNextDayEnd bool

	RequireClockIn              bool
	RequireClockOut             bool
	ClockInEarlyMinutes         int
	LateThresholdMinutes        int
	HalfDayLateThresholdMinutes int

	ClockOutLateMinutes          int
	EarlyOutThresholdMinutes     int
	HalfDayEarlyThresholdMinutes int

	FlexLateHours    int
	FlexLateMinutes  int
	FlexEarlyHours   int
	FlexEarlyMinutes int

	HasBreaks            bool
	BreakDurationMinutes int

	WorkingHoursMinutes int
	Status              Status

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy *int64
	UpdatedBy *int64
}

type ShiftType string

const (
	ShiftTypeFixedTime ShiftType = "FIXED_TIME"
	ShiftTypeFlextime  ShiftType = "FLEXTIME"
)

type DateType string

const (
	DateTypeWorkDays DateType = "WORK_DAYS"
	DateTypeOffDays  DateType = "OFF_DAYS"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// New returns a shift carrying the default rule set: 09:00-18:00, fixed time, work days.
func New() Shift {
	return Shift{
		ShiftType:                    ShiftTypeFixedTime,
		DateType:                     DateTypeWorkDays,
		StartTime:                    "09:00",
		EndTime:                      "18:00",
		RequireClockIn:               true,
		RequireClockOut:              true,
		ClockInEarlyMinutes:          60,
		LateThresholdMinutes:         0,
		HalfDayLateThresholdMinutes:  30,
		ClockOutLateMinutes:          480,
		EarlyOutThresholdMinutes:     0,
		HalfDayEarlyThresholdMinutes: 30,
		FlexLateHours:                1,
		FlexLateMinutes:              0,
		FlexEarlyHours:               1,
		FlexEarlyMinutes:             0,
		Status:                       StatusActive,
	}
}

// Window returns the parsed time window. Stored shifts always carry valid clocks.
func (s Shift) Window() (Window, error) {
	return NewWindow(s.StartTime, s.EndTime, s.IsNextDayEnd, s.HasBreaks, s.BreakDurationMinutes)
}

// RecomputeWorkingHours refreshes WorkingHoursMinutes from the time window.
func (s *Shift) RecomputeWorkingHours() error {
	w, err := s.Window()
	if err != nil {
		return err
	}
	s.WorkingHoursMinutes = w.WorkingHours().TotalMinutes
	return nil
}

// TimeRange renders the window as "HH:mm ~ HH:mm".
func (s Shift) TimeRange() string {
	return s.StartTime + " ~ " + s.EndTime
}

// FlexLateAllowance is the maximum late arrival for flextime shifts; the required
// departure moves later by the same amount.
func (s Shift) FlexLateAllowance() time.Duration {
	if s.ShiftType != ShiftTypeFlextime {
		return 0
	}
	return time.Duration(s.FlexLateHours)*time.Hour + time.Duration(s.FlexLateMinutes)*time.Minute
}

// FlexEarlyAllowance is the maximum early departure for flextime shifts.
func (s Shift) FlexEarlyAllowance() time.Duration {
	if s.ShiftType != ShiftTypeFlextime {
		return 0
	}
	return time.Duration(s.FlexEarlyHours)*time.Hour + time.Duration(s.FlexEarlyMinutes)*time.Minute
}
