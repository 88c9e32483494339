package shift

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/validator"
)

// ShiftResponse mirrors Shift on the wire.
type ShiftResponse struct {
	ID          int64     `json:"id"`
	Code        *string   `json:"code,omitempty"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ShiftType   ShiftType `json:"shiftType"`
	DateType    DateType  `json:"dateType"`

	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	IsNextDayEnd bool   `json:"isNextDayEnd"`

	RequireClockIn              bool `json:"requireClockIn"`
	RequireClockOut             bool `json:"requireClockOut"`
	ClockInEarlyMinutes         int  `json:"clockInEarlyMinutes"`
	LateThresholdMinutes        int  `json:"lateThresholdMinutes"`
	HalfDayLateThresholdMinutes int  `json:"halfDayLateThresholdMinutes"`

	ClockOutLateMinutes          int `json:"clockOutLateMinutes"`
	EarlyOutThresholdMinutes     int `json:"earlyOutThresholdMinutes"`
	HalfDayEarlyThresholdMinutes int `json:"halfDayEarlyThresholdMinutes"`

	FlexLateHours    int `json:"flexLateHours"`
	FlexLateMinutes  int `json:"flexLateMinutes"`
	FlexEarlyHours   int `json:"flexEarlyHours"`
	FlexEarlyMinutes int `json:"flexEarlyMinutes"`

	HasBreaks            bool `json:"hasBreaks"`
	BreakDurationMinutes int  `json:"breakDurationMinutes"`

	WorkingHoursMinutes int    `json:"workingHoursMinutes"`
	Status              Status `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy *int64    `json:"createdBy,omitempty"`
	UpdatedBy *int64    `json:"updatedBy,omitempty"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:                           s.ID,
		Code:                         s.Code,
		Name:                         s.Name,
		Description:                  s.Description,
		ShiftType:                    s.ShiftType,
		DateType:                     s.DateType,
		StartTime:                    s.StartTime,
		EndTime:                      s.EndTime,
		IsNextDayEnd:                 s.IsNextDayEnd,
		RequireClockIn:               s.RequireClockIn,
		RequireClockOut:              s.RequireClockOut,
		ClockInEarlyMinutes:          s.ClockInEarlyMinutes,
		LateThresholdMinutes:         s.LateThresholdMinutes,
		HalfDayLateThresholdMinutes:  s.HalfDayLateThresholdMinutes,
		ClockOutLateMinutes:          s.ClockOutLateMinutes,
		EarlyOutThresholdMinutes:     s.EarlyOutThresholdMinutes,
		HalfDayEarlyThresholdMinutes: s.HalfDayEarlyThresholdMinutes,
		FlexLateHours:                s.FlexLateHours,
		FlexLateMinutes:              s.FlexLateMinutes,
		FlexEarlyHours:               s.FlexEarlyHours,
		FlexEarlyMinutes:             s.FlexEarlyMinutes,
		HasBreaks:                    s.HasBreaks,
		BreakDurationMinutes:         s.BreakDurationMinutes,
		WorkingHoursMinutes:          s.WorkingHoursMinutes,
		Status:                       s.Status,
		CreatedAt:                    s.CreatedAt,
		UpdatedAt:                    s.UpdatedAt,
		CreatedBy:                    s.CreatedBy,
		UpdatedBy:                    s.UpdatedBy,
	}
}

// Shift converts a response back into the domain shape.
func (r ShiftResponse) Shift() Shift {
	return Shift{
		ID:                           r.ID,
		Code:                         r.Code,
		Name:                         r.Name,
		Description:                  r.Description,
		ShiftType:                    r.ShiftType,
		DateType:                     r.DateType,
		StartTime:                    r.StartTime,
		EndTime:                      r.EndTime,
		IsNextDayEnd:                 r.IsNextDayEnd,
		RequireClockIn:               r.RequireClockIn,
		RequireClockOut:              r.RequireClockOut,
		ClockInEarlyMinutes:          r.ClockInEarlyMinutes,
		LateThresholdMinutes:         r.LateThresholdMinutes,
		HalfDayLateThresholdMinutes:  r.HalfDayLateThresholdMinutes,
		ClockOutLateMinutes:          r.ClockOutLateMinutes,
		EarlyOutThresholdMinutes:     r.EarlyOutThresholdMinutes,
		HalfDayEarlyThresholdMinutes: r.HalfDayEarlyThresholdMinutes,
		FlexLateHours:                r.FlexLateHours,
		FlexLateMinutes:              r.FlexLateMinutes,
		FlexEarlyHours:               r.FlexEarlyHours,
		FlexEarlyMinutes:             r.FlexEarlyMinutes,
		HasBreaks:                    r.HasBreaks,
		BreakDurationMinutes:         r.BreakDurationMinutes,
		WorkingHoursMinutes:          r.WorkingHoursMinutes,
		Status:                       r.Status,
		CreatedAt:                    r.CreatedAt,
		UpdatedAt:                    r.UpdatedAt,
		CreatedBy:                    r.CreatedBy,
		UpdatedBy:                    r.UpdatedBy,
	}
}

// CreateShiftRequest creates a shift. Unset optional fields take the defaults of New.
type CreateShiftRequest struct {
	Code        *string    `json:"code,omitempty" validate:"omitempty,max=20"`
	Name        string     `json:"name" validate:"required,notblank,max=64"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	ShiftType   *ShiftType `json:"shiftType,omitempty" validate:"omitempty,oneof=FIXED_TIME FLEXTIME"`
	DateType    *DateType  `json:"dateType,omitempty" validate:"omitempty,oneof=WORK_DAYS OFF_DAYS"`

	StartTime    string `json:"startTime" validate:"required,clock"`
	EndTime      string `json:"endTime" validate:"required,clock"`
	IsNextDayEnd *bool  `json:"isNextDayEnd,omitempty"`

	RequireClockIn              *bool `json:"requireClockIn,omitempty"`
	RequireClockOut             *bool `json:"requireClockOut,omitempty"`
	ClockInEarlyMinutes         *int  `json:"clockInEarlyMinutes,omitempty" validate:"omitempty,min=0,max=480"`
	LateThresholdMinutes        *int  `json:"lateThresholdMinutes,omitempty" validate:"omitempty,min=0,max=480"`
	HalfDayLateThresholdMinutes *int  `json:"halfDayLateThresholdMinutes,omitempty" validate:"omitempty,min=0,max=480"`

	ClockOutLateMinutes          *int `json:"clockOutLateMinutes,omitempty" validate:"omitempty,min=0,max=960"`
	EarlyOutThresholdMinutes     *int `json:"earlyOutThresholdMinutes,omitempty" validate:"omitempty,min=0,max=480"`
	HalfDayEarlyThresholdMinutes *int `json:"halfDayEarlyThresholdMinutes,omitempty" validate:"omitempty,min=0,max=480"`

	FlexLateHours    *int `json:"flexLateHours,omitempty" validate:"omitempty,min=0,max=12"`
	FlexLateMinutes  *int `json:"flexLateMinutes,omitempty" validate:"omitempty,min=0,max=59"`
	FlexEarlyHours   *int `json:"flexEarlyHours,omitempty" validate:"omitempty,min=0,max=12"`
	FlexEarlyMinutes *int `json:"flexEarlyMinutes,omitempty" validate:"omitempty,min=0,max=59"`

	HasBreaks            *bool `json:"hasBreaks,omitempty"`
	BreakDurationMinutes *int  `json:"breakDurationMinutes,omitempty" validate:"omitempty,min=0,max=240"`
}

func (r *CreateShiftRequest) Validate() error {
	return validator.Struct(r)
}

// ToShift builds a new shift from the request on top of the default rule set.
func (r *CreateShiftRequest) ToShift() Shift {
	s := New()
	s.Name = strings.TrimSpace(r.Name)
	s.StartTime = r.StartTime
	s.EndTime = r.EndTime
	fields := r.fields()
	fields.apply(&s)
	return s
}

func (r *CreateShiftRequest) fields() UpdateShiftRequest {
	return UpdateShiftRequest{
		Code:                         r.Code,
		Description:                  r.Description,
		ShiftType:                    r.ShiftType,
		DateType:                     r.DateType,
		IsNextDayEnd:                 r.IsNextDayEnd,
		RequireClockIn:               r.RequireClockIn,
		RequireClockOut:              r.RequireClockOut,
		ClockInEarlyMinutes:          r.ClockInEarlyMinutes,
		LateThresholdMinutes:         r.LateThresholdMinutes,
		HalfDayLateThresholdMinutes:  r.HalfDayLateThresholdMinutes,
		ClockOutLateMinutes:          r.ClockOutLateMinutes,
		EarlyOutThresholdMinutes:     r.EarlyOutThresholdMinutes,
		HalfDayEarlyThresholdMinutes: r.HalfDayEarlyThresholdMinutes,
		FlexLateHours:                r.FlexLateHours,
		FlexLateMinutes:              r.FlexLateMinutes,
		FlexEarlyHours:               r.FlexEarlyHours,
		FlexEarlyMinutes:             r.FlexEarlyMinutes,
		HasBreaks:                    r.HasBreaks,
		BreakDurationMinutes:         r.BreakDurationMinutes,
	}
}

// UpdateShiftRequest changes the fields that are present and keeps the rest.
type UpdateShiftRequest struct {
	ID          int64      `json:"-"`
	Code        *string    `json:"code,omitempty" validate:"omitempty,max=20"`
	Name        *string    `json:"name,omitempty" validate:"omitempty,notblank,max=64"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	ShiftType   *ShiftType `json:"shiftType,omitempty" validate:"omitempty,oneof=FIXED_TIME FLEXTIME"`
	DateType    *DateType  `json:"dateType,omitempty" validate:"omitempty,oneof=WORK_DAYS OFF_DAYS"`

	StartTime    *string `json:"startTime,omitempty" validate:"omitempty,clock"`
	EndTime      *string `json:"endTime,omitempty" validate:"omitempty,clock"`
	IsNextDayEnd *bool   `json:"isNextDayEnd,omitempty"`

	RequireClockIn              *bool `json:"requireClockIn,omitempty"`
	RequireClockOut             *bool `json:"requireClockOut,omitempty"`
	ClockInEarlyMinutes         *int  `json:"clockInEarlyMinutes,omitempty" validate:"omitempty,min=0,max=480"`
	LateThresholdMinutes        *int  `json:"lateThresholdMinutes,omitempty" validate:"omitempty,min=0,max=480"`
	HalfDayLateThresholdMinutes *int  `json:"halfDayLateThresholdMinutes,omitempty" validate:"omitempty,min=0,max=480"`

	ClockOutLateMinutes          *int `json:"clockOutLateMinutes,omitempty" validate:"omitempty,min=0,max=960"`
	EarlyOutThresholdMinutes     *int `json:"earlyOutThresholdMinutes,omitempty" validate:"omitempty,min=0,max=480"`
	HalfDayEarlyThresholdMinutes *int `json:"halfDayEarlyThresholdMinutes,omitempty" validate:"omitempty,min=0,max=480"`

	FlexLateHours    *int `json:"flexLateHours,omitempty" validate:"omitempty,min=0,max=12"`
	FlexLateMinutes  *int `json:"flexLateMinutes,omitempty" validate:"omitempty,min=0,max=59"`
	FlexEarlyHours   *int `json:"flexEarlyHours,omitempty" validate:"omitempty,min=0,max=12"`
	FlexEarlyMinutes *int `json:"flexEarlyMinutes,omitempty" validate:"omitempty,min=0,max=59"`

	HasBreaks            *bool `json:"hasBreaks,omitempty"`
	BreakDurationMinutes *int  `json:"breakDurationMinutes,omitempty" validate:"omitempty,min=0,max=240"`

	Status *Status `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r *UpdateShiftRequest) Validate() error {
	errs := validator.ValidationErrors{}
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	return errs.OrNil()
}

// Apply copies the present fields onto s.
func (r *UpdateShiftRequest) Apply(s *Shift) {
	if r.Name != nil {
		s.Name = strings.TrimSpace(*r.Name)
	}
	if r.StartTime != nil {
		s.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		s.EndTime = *r.EndTime
	}
	if r.Status != nil {
		s.Status = *r.Status
	}
	r.apply(s)
}

func (r *UpdateShiftRequest) apply(s *Shift) {
	if r.Code != nil {
		s.Code = blankToNil(*r.Code)
	}
	if r.Description != nil {
		s.Description = r.Description
	}
	if r.ShiftType != nil {
		s.ShiftType = *r.ShiftType
	}
	if r.DateType != nil {
		s.DateType = *r.DateType
	}
	setBool(&s.IsNextDayEnd, r.IsNextDayEnd)
	setBool(&s.RequireClockIn, r.RequireClockIn)
	setBool(&s.RequireClockOut, r.RequireClockOut)
	setInt(&s.ClockInEarlyMinutes, r.ClockInEarlyMinutes)
	setInt(&s.LateThresholdMinutes, r.LateThresholdMinutes)
	setInt(&s.HalfDayLateThresholdMinutes, r.HalfDayLateThresholdMinutes)
	setInt(&s.ClockOutLateMinutes, r.ClockOutLateMinutes)
	setInt(&s.EarlyOutThresholdMinutes, r.EarlyOutThresholdMinutes)
	setInt(&s.HalfDayEarlyThresholdMinutes, r.HalfDayEarlyThresholdMinutes)
	setInt(&s.FlexLateHours, r.FlexLateHours)
	setInt(&s.FlexLateMinutes, r.FlexLateMinutes)
	setInt(&s.FlexEarlyHours, r.FlexEarlyHours)
	setInt(&s.FlexEarlyMinutes, r.FlexEarlyMinutes)
	setBool(&s.HasBreaks, r.HasBreaks)
	setInt(&s.BreakDurationMinutes, r.BreakDurationMinutes)
}

// blankToNil trims s and reports an empty value as nil, so a blank code is stored
// as NULL and never collides on the unique index.
func blankToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// ListFilter selects shifts for the list endpoint. A non-empty Search restricts the
// result to active shifts whose name contains it; otherwise Status applies.
type ListFilter struct {
	Search string
	Status Status
	Page   page.Request
}

// SortColumns maps public sort fields to columns.
var SortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"code":      "code",
	"startTime": "start_time",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}
