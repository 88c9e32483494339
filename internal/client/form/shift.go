// Package form holds the editable client-side models behind the shift and
// attendance-group forms.
package form

import (
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
)

// IntField names a bounded numeric shift rule.
type IntField string

const (
	ClockInEarlyMinutes          IntField = "clockInEarlyMinutes"
	LateThresholdMinutes         IntField = "lateThresholdMinutes"
	HalfDayLateThresholdMinutes  IntField = "halfDayLateThresholdMinutes"
	ClockOutLateMinutes          IntField = "clockOutLateMinutes"
	EarlyOutThresholdMinutes     IntField = "earlyOutThresholdMinutes"
	HalfDayEarlyThresholdMinutes IntField = "halfDayEarlyThresholdMinutes"
	FlexLateHours                IntField = "flexLateHours"
	FlexLateMinutes              IntField = "flexLateMinutes"
	FlexEarlyHours               IntField = "flexEarlyHours"
	FlexEarlyMinutes             IntField = "flexEarlyMinutes"
	BreakDurationMinutes         IntField = "breakDurationMinutes"
)

type bounds struct{ min, max int }

var intBounds = map[IntField]bounds{
	ClockInEarlyMinutes:          {0, 480},
	LateThresholdMinutes:         {0, 480},
	HalfDayLateThresholdMinutes:  {0, 480},
	ClockOutLateMinutes:          {0, 960},
	EarlyOutThresholdMinutes:     {0, 480},
	HalfDayEarlyThresholdMinutes: {0, 480},
	FlexLateHours:                {0, 12},
	FlexLateMinutes:              {0, 59},
	FlexEarlyHours:               {0, 12},
	FlexEarlyMinutes:             {0, 59},
	BreakDurationMinutes:         {0, 240},
}

// IntFields lists the bounded fields in display order.
var IntFields = []IntField{
	ClockInEarlyMinutes, LateThresholdMinutes, HalfDayLateThresholdMinutes,
	ClockOutLateMinutes, EarlyOutThresholdMinutes, HalfDayEarlyThresholdMinutes,
	FlexLateHours, FlexLateMinutes, FlexEarlyHours, FlexEarlyMinutes,
	BreakDurationMinutes,
}

// ShiftForm is the editable state of one shift. ID is zero for a new shift.
type ShiftForm struct {
	ID    int64
	Draft shift.Shift
}

// NewShiftForm starts from the default rule set.
func NewShiftForm() ShiftForm {
	return ShiftForm{Draft: shift.New()}
}

// ShiftFormFrom pre-populates the form from a fetched shift.
func ShiftFormFrom(resp shift.ShiftResponse) ShiftForm {
	return ShiftForm{ID: resp.ID, Draft: resp.Shift()}
}

func (f *ShiftForm) slot(field IntField) *int {
	d := &f.Draft
	switch field {
	case ClockInEarlyMinutes:
		return &d.ClockInEarlyMinutes
	case LateThresholdMinutes:
		return &d.LateThresholdMinutes
	case HalfDayLateThresholdMinutes:
		return &d.HalfDayLateThresholdMinutes
	case ClockOutLateMinutes:
		return &d.ClockOutLateMinutes
	case EarlyOutThresholdMinutes:
		return &d.EarlyOutThresholdMinutes
	case HalfDayEarlyThresholdMinutes:
		return &d.HalfDayEarlyThresholdMinutes
	case FlexLateHours:
		return &d.FlexLateHours
	case FlexLateMinutes:
		return &d.FlexLateMinutes
	case FlexEarlyHours:
		return &d.FlexEarlyHours
	case FlexEarlyMinutes:
		return &d.FlexEarlyMinutes
	case BreakDurationMinutes:
		return &d.BreakDurationMinutes
	}
	return nil
}

// SetInt stores v clamped to the field's bounds and returns the stored value.
// Unknown fields are ignored and report false.
func (f *ShiftForm) SetInt(field IntField, v int) (int, bool) {
	p := f.slot(field)
	b, ok := intBounds[field]
	if p == nil || !ok {
		return 0, false
	}
	if v < b.min {
		v = b.min
	}
	if v > b.max {
		v = b.max
	}
	*p = v
	return v, true
}

func (f *ShiftForm) Int(field IntField) int {
	if p := f.slot(field); p != nil {
		return *p
	}
	return 0
}

// CanSubmit reports whether the form may be sent. Only a blank name blocks it.
func (f *ShiftForm) CanSubmit() bool {
	return strings.TrimSpace(f.Draft.Name) != ""
}

// Preview computes the working hours shown next to the form. The value is for
// display only.
func (f *ShiftForm) Preview() (shift.WorkingHours, error) {
	w, err := f.Draft.Window()
	if err != nil {
		return shift.WorkingHours{}, err
	}
	return w.WorkingHours(), nil
}

// CreateRequest carries the complete rule set.
func (f *ShiftForm) CreateRequest() shift.CreateShiftRequest {
	d := f.Draft
	return shift.CreateShiftRequest{
		Code:                         d.Code,
		Name:                         strings.TrimSpace(d.Name),
		Description:                  d.Description,
		ShiftType:                    ptr(d.ShiftType),
		DateType:                     ptr(d.DateType),
		StartTime:                    d.StartTime,
		EndTime:                      d.EndTime,
		IsNextDayEnd:                 ptr(d.IsNextDayEnd),
		RequireClockIn:               ptr(d.RequireClockIn),
		RequireClockOut:              ptr(d.RequireClockOut),
		ClockInEarlyMinutes:          ptr(d.ClockInEarlyMinutes),
		LateThresholdMinutes:         ptr(d.LateThresholdMinutes),
		HalfDayLateThresholdMinutes:  ptr(d.HalfDayLateThresholdMinutes),
		ClockOutLateMinutes:          ptr(d.ClockOutLateMinutes),
		EarlyOutThresholdMinutes:     ptr(d.EarlyOutThresholdMinutes),
		HalfDayEarlyThresholdMinutes: ptr(d.HalfDayEarlyThresholdMinutes),
		FlexLateHours:                ptr(d.FlexLateHours),
		FlexLateMinutes:              ptr(d.FlexLateMinutes),
		FlexEarlyHours:               ptr(d.FlexEarlyHours),
		FlexEarlyMinutes:             ptr(d.FlexEarlyMinutes),
		HasBreaks:                    ptr(d.HasBreaks),
		BreakDurationMinutes:         ptr(d.BreakDurationMinutes),
	}
}

// UpdateRequest also carries the complete rule set; the form never sends a
// partial update.
func (f *ShiftForm) UpdateRequest() shift.UpdateShiftRequest {
	c := f.CreateRequest()
	return shift.UpdateShiftRequest{
		ID:                           f.ID,
		Code:                         c.Code,
		Name:                         &c.Name,
		Description:                  c.Description,
		ShiftType:                    c.ShiftType,
		DateType:                     c.DateType,
		StartTime:                    &c.StartTime,
		EndTime:                      &c.EndTime,
		IsNextDayEnd:                 c.IsNextDayEnd,
		RequireClockIn:               c.RequireClockIn,
		RequireClockOut:              c.RequireClockOut,
		ClockInEarlyMinutes:          c.ClockInEarlyMinutes,
		LateThresholdMinutes:         c.LateThresholdMinutes,
		HalfDayLateThresholdMinutes:  c.HalfDayLateThresholdMinutes,
		ClockOutLateMinutes:          c.ClockOutLateMinutes,
		EarlyOutThresholdMinutes:     c.EarlyOutThresholdMinutes,
		HalfDayEarlyThresholdMinutes: c.HalfDayEarlyThresholdMinutes,
		FlexLateHours:                c.FlexLateHours,
		FlexLateMinutes:              c.FlexLateMinutes,
		FlexEarlyHours:               c.FlexEarlyHours,
		FlexEarlyMinutes:             c.FlexEarlyMinutes,
		HasBreaks:                    c.HasBreaks,
		BreakDurationMinutes:         c.BreakDurationMinutes,
	}
}

func ptr[T any](v T) *T {
	return &v
}
