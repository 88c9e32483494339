package attendancegroup

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/validator"
)

type AttendanceGroupResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	OwnerID        *int64  `json:"ownerId"`
	SubOwnerIDs    []int64 `json:"subOwnerIds"`
	Timezone       string  `json:"timezone"`
	RelocationSync bool    `json:"relocationSync"`

	MemberTrackingRequired           MemberTrackingMode `json:"memberTrackingRequired"`
	MemberTrackingRequiredConditions *string            `json:"memberTrackingRequiredConditions,omitempty"`
	MemberTrackingOptional           MemberTrackingMode `json:"memberTrackingOptional"`
	MemberTrackingOptionalConditions *string            `json:"memberTrackingOptionalConditions,omitempty"`

	ShiftType        ShiftType `json:"shiftType"`
	ShiftTypeLabel   string    `json:"shiftTypeLabel"`
	DefaultShiftID   *int64    `json:"defaultShiftId"`
	DefaultShiftName *string   `json:"defaultShiftName"`
	DefaultShiftTime *string   `json:"defaultShiftTime"`
	WeeklyShiftIDs

	UsePublicHolidays bool     `json:"usePublicHolidays"`
	SpecialDays       []string `json:"specialDays"`

	RequirePhoto            bool                   `json:"requirePhoto"`
	AllowOffsite            bool                   `json:"allowOffsite"`
	OutOfOfficePolicy       *AttendancePolicy      `json:"outOfOfficePolicy"`
	OutOfOfficePolicyLabel  string                 `json:"outOfOfficePolicyLabel,omitempty"`
	BusinessTripPolicy      *AttendancePolicy      `json:"businessTripPolicy"`
	BusinessTripPolicyLabel string                 `json:"businessTripPolicyLabel,omitempty"`
	PartialLeavePolicy      *LeaveAttendancePolicy `json:"partialLeavePolicy"`
	PartialLeavePolicyLabel string                 `json:"partialLeavePolicyLabel,omitempty"`
	RecordOvertime          bool                   `json:"recordOvertime"`
	NonWorkingDayApproval   bool                   `json:"nonWorkingDayApproval"`
	NonWorkingDayResetTime  string                 `json:"nonWorkingDayResetTime"`
	AllowCorrections        bool                   `json:"allowCorrections"`
	CorrectionTypes         []string               `json:"correctionTypes"`

	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	MemberCount int       `json:"memberCount"`
}

func NewAttendanceGroupResponse(g AttendanceGroup) AttendanceGroupResponse {
	resp := AttendanceGroupResponse{
		ID:                               g.ID,
		Name:                             g.Name,
		OwnerID:                          g.OwnerID,
		SubOwnerIDs:                      nonNilInts(g.SubOwnerIDs),
		Timezone:                         g.Timezone,
		RelocationSync:                   g.RelocationSync,
		MemberTrackingRequired:           g.MemberTrackingRequired,
		MemberTrackingRequiredConditions: g.MemberTrackingRequiredConditions,
		MemberTrackingOptional:           g.MemberTrackingOptional,
		MemberTrackingOptionalConditions: g.MemberTrackingOptionalConditions,
		ShiftType:                        g.ShiftType,
		ShiftTypeLabel:                   g.ShiftType.Label(),
		DefaultShiftID:                   g.DefaultShiftID,
		DefaultShiftName:                 g.DefaultShiftName,
		WeeklyShiftIDs:                   g.Weekly,
		UsePublicHolidays:                g.UsePublicHolidays,
		SpecialDays:                      nonNilStrings(g.SpecialDays),
		RequirePhoto:                     g.RequirePhoto,
		AllowOffsite:                     g.AllowOffsite,
		OutOfOfficePolicy:                g.OutOfOfficePolicy,
		BusinessTripPolicy:               g.BusinessTripPolicy,
		PartialLeavePolicy:               g.PartialLeavePolicy,
		RecordOvertime:                   g.RecordOvertime,
		NonWorkingDayApproval:            g.NonWorkingDayApproval,
		NonWorkingDayResetTime:           g.NonWorkingDayResetTime,
		AllowCorrections:                 g.AllowCorrections,
		CorrectionTypes:                  nonNilStrings(g.CorrectionTypes),
		Status:                           g.Status,
		CreatedAt:                        g.CreatedAt,
		UpdatedAt:                        g.UpdatedAt,
		MemberCount:                      g.MemberCount,
	}

	if g.DefaultShiftStart != nil && g.DefaultShiftEnd != nil {
		t := *g.DefaultShiftStart + " ~ " + *g.DefaultShiftEnd
		resp.DefaultShiftTime = &t
	}
	if g.OutOfOfficePolicy != nil {
		resp.OutOfOfficePolicyLabel = g.OutOfOfficePolicy.Label(ContextOutOfOffice)
	}
	if g.BusinessTripPolicy != nil {
		resp.BusinessTripPolicyLabel = g.BusinessTripPolicy.Label(ContextBusinessTrip)
	}
	if g.PartialLeavePolicy != nil {
		resp.PartialLeavePolicyLabel = g.PartialLeavePolicy.Label()
	}
	return resp
}

// Settings are the group fields shared by create and update. Nil fields are left
// unchanged.
type Settings struct {
	OwnerID        *int64  `json:"ownerId,omitempty"`
	SubOwnerIDs    []int64 `json:"subOwnerIds,omitempty"`
	Timezone       *string `json:"timezone,omitempty" validate:"omitempty,notblank,max=50"`
	RelocationSync *bool   `json:"relocationSync,omitempty"`

	MemberTrackingRequired           *MemberTrackingMode `json:"memberTrackingRequired,omitempty" validate:"omitempty,oneof=ALL CUSTOM NONE"`
	MemberTrackingRequiredConditions *string             `json:"memberTrackingRequiredConditions,omitempty" validate:"omitempty,max=2000"`
	MemberTrackingOptional           *MemberTrackingMode `json:"memberTrackingOptional,omitempty" validate:"omitempty,oneof=ALL CUSTOM NONE"`
	MemberTrackingOptionalConditions *string             `json:"memberTrackingOptionalConditions,omitempty" validate:"omitempty,max=2000"`

	ShiftType *ShiftType `json:"shiftType,omitempty" validate:"omitempty,oneof=FIXED SCHEDULED FREE"`

	UsePublicHolidays *bool    `json:"usePublicHolidays,omitempty"`
	SpecialDays       []string `json:"specialDays,omitempty" validate:"omitempty,dive,date"`

	RequirePhoto           *bool                  `json:"requirePhoto,omitempty"`
	AllowOffsite           *bool                  `json:"allowOffsite,omitempty"`
	OutOfOfficePolicy      *AttendancePolicy      `json:"outOfOfficePolicy,omitempty" validate:"omitempty,oneof=NO_CLOCK SHIFT_TIMES BEFORE_AFTER"`
	BusinessTripPolicy     *AttendancePolicy      `json:"businessTripPolicy,omitempty" validate:"omitempty,oneof=NO_CLOCK SHIFT_TIMES BEFORE_AFTER"`
	PartialLeavePolicy     *LeaveAttendancePolicy `json:"partialLeavePolicy,omitempty" validate:"omitempty,oneof=NO_CLOCK ON_LEAVE_RETURN"`
	RecordOvertime         *bool                  `json:"recordOvertime,omitempty"`
	NonWorkingDayApproval  *bool                  `json:"nonWorkingDayApproval,omitempty"`
	NonWorkingDayResetTime *string                `json:"nonWorkingDayResetTime,omitempty" validate:"omitempty,clock"`
	AllowCorrections       *bool                  `json:"allowCorrections,omitempty"`
	CorrectionTypes        []string               `json:"correctionTypes,omitempty"`
}

func (s *Settings) apply(g *AttendanceGroup) {
	if s.OwnerID != nil {
		g.OwnerID = s.OwnerID
	}
	if s.SubOwnerIDs != nil {
		g.SubOwnerIDs = s.SubOwnerIDs
	}
	if s.Timezone != nil {
		g.Timezone = strings.TrimSpace(*s.Timezone)
	}
	setBool(&g.RelocationSync, s.RelocationSync)
	if s.MemberTrackingRequired != nil {
		g.MemberTrackingRequired = *s.MemberTrackingRequired
	}
	if s.MemberTrackingRequiredConditions != nil {
		g.MemberTrackingRequiredConditions = s.MemberTrackingRequiredConditions
	}
	if s.MemberTrackingOptional != nil {
		g.MemberTrackingOptional = *s.MemberTrackingOptional
	}
	if s.MemberTrackingOptionalConditions != nil {
		g.MemberTrackingOptionalConditions = s.MemberTrackingOptionalConditions
	}
	if s.ShiftType != nil {
		g.ShiftType = *s.ShiftType
	}
	setBool(&g.UsePublicHolidays, s.UsePublicHolidays)
	if s.SpecialDays != nil {
		g.SpecialDays = s.SpecialDays
	}
	setBool(&g.RequirePhoto, s.RequirePhoto)
	setBool(&g.AllowOffsite, s.AllowOffsite)
	if s.OutOfOfficePolicy != nil {
		g.OutOfOfficePolicy = s.OutOfOfficePolicy
	}
	if s.BusinessTripPolicy != nil {
		g.BusinessTripPolicy = s.BusinessTripPolicy
	}
	if s.PartialLeavePolicy != nil {
		g.PartialLeavePolicy = s.PartialLeavePolicy
	}
	setBool(&g.RecordOvertime, s.RecordOvertime)
	setBool(&g.NonWorkingDayApproval, s.NonWorkingDayApproval)
	if s.NonWorkingDayResetTime != nil {
		g.NonWorkingDayResetTime = *s.NonWorkingDayResetTime
	}
	setBool(&g.AllowCorrections, s.AllowCorrections)
	if s.CorrectionTypes != nil {
		g.CorrectionTypes = s.CorrectionTypes
	}
}

type CreateAttendanceGroupRequest struct {
	Name           string `json:"name" validate:"required,notblank,max=64"`
	DefaultShiftID *int64 `json:"defaultShiftId,omitempty" validate:"omitempty,gt=0"`
	WeeklyShiftIDs
	Settings
}

func (r *CreateAttendanceGroupRequest) Validate() error {
	return validator.Struct(r)
}

// ToGroup builds a new group on top of the defaults.
func (r *CreateAttendanceGroupRequest) ToGroup() AttendanceGroup {
	g := New()
	g.Name = strings.TrimSpace(r.Name)
	g.ShiftType = ShiftTypeFixed
	g.DefaultShiftID = r.DefaultShiftID
	g.Weekly = r.WeeklyShiftIDs
	r.Settings.apply(&g)
	return g
}

// UpdateAttendanceGroupRequest updates a group. Unlike Settings, DefaultShiftID and
// the weekly ids are always written: nil clears them.
type UpdateAttendanceGroupRequest struct {
	ID             int64   `json:"-"`
	Name           *string `json:"name,omitempty" validate:"omitempty,notblank,max=64"`
	DefaultShiftID *int64  `json:"defaultShiftId" validate:"omitempty,gt=0"`
	WeeklyShiftIDs
	Settings
	Status *Status `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (r *UpdateAttendanceGroupRequest) Validate() error {
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

// Apply writes the request onto g.
func (r *UpdateAttendanceGroupRequest) Apply(g *AttendanceGroup) {
	if r.Name != nil {
		g.Name = strings.TrimSpace(*r.Name)
	}
	g.DefaultShiftID = r.DefaultShiftID
	g.Weekly = r.WeeklyShiftIDs
	if r.Status != nil {
		g.Status = *r.Status
	}
	r.Settings.apply(g)
}

type ListFilter struct {
	Search string
	Status Status
	Page   page.Request
}

var SortColumns = map[string]string{
	"id":        "g.id",
	"name":      "g.name",
	"createdAt": "g.created_at",
	"updatedAt": "g.updated_at",
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func nonNilInts(v []int64) []int64 {
	if v == nil {
		return []int64{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
