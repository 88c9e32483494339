package user

import (
	"strings"

	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/validator"
)

// UserResponse represents a member on the wire.
type UserResponse struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Roles     []string `json:"roles"`

	Username          string         `json:"username,omitempty"`
	Status            Status         `json:"status,omitempty"`
	PhoneNumber       *string        `json:"phoneNumber,omitempty"`
	DepartmentID      *int64         `json:"departmentId,omitempty"`
	AttendanceGroupID *int64         `json:"attendanceGroupId,omitempty"`
	Alias             *string        `json:"alias,omitempty"`
	DeskID            *string        `json:"deskId,omitempty"`
	PhoneExtension    *string        `json:"phoneExtension,omitempty"`
	EmployeeNumber    *string        `json:"employeeNumber,omitempty"`
	ExternalUserID    *string        `json:"userId,omitempty"`
	Gender            *Gender        `json:"gender,omitempty"`
	WorkforceType     *WorkforceType `json:"workforceType,omitempty"`
	DateOfEmployment  *string        `json:"dateOfEmployment,omitempty"`
	Country           *string        `json:"country,omitempty"`
	City              *string        `json:"city,omitempty"`
	DirectManager     *string        `json:"directManager,omitempty"`
	DottedLineManager *string        `json:"dottedLineManager,omitempty"`
	JobTitle          *string        `json:"jobTitle,omitempty"`
}

func NewUserResponse(u User) UserResponse {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}

	resp := UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Roles:             roles,
		Username:          u.Username,
		Status:            u.Status,
		PhoneNumber:       u.PhoneNumber,
		DepartmentID:      u.DepartmentID,
		AttendanceGroupID: u.AttendanceGroupID,
		Alias:             u.Alias,
		DeskID:            u.DeskID,
		PhoneExtension:    u.PhoneExtension,
		EmployeeNumber:    u.EmployeeNumber,
		ExternalUserID:    u.ExternalUserID,
		Gender:            u.Gender,
		WorkforceType:     u.WorkforceType,
		Country:           u.Country,
		City:              u.City,
		DirectManager:     u.DirectManager,
		DottedLineManager: u.DottedLineManager,
		JobTitle:          u.JobTitle,
	}
	if u.DateOfEmployment != nil {
		d := u.DateOfEmployment.Format("2006-01-02")
		resp.DateOfEmployment = &d
	}
	return resp
}

// Profile holds the optional member details shared by create and update.
type Profile struct {
	FirstName         *string        `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName          *string        `json:"lastName,omitempty" validate:"omitempty,max=100"`
	PhoneNumber       *string        `json:"phoneNumber,omitempty" validate:"omitempty,max=30"`
	DepartmentID      *int64         `json:"departmentId,omitempty" validate:"omitempty,gt=0"`
	AttendanceGroupID *int64         `json:"attendanceGroupId,omitempty" validate:"omitempty,gt=0"`
	Alias             *string        `json:"alias,omitempty" validate:"omitempty,max=100"`
	DeskID            *string        `json:"deskId,omitempty" validate:"omitempty,max=50"`
	PhoneExtension    *string        `json:"phoneExtension,omitempty" validate:"omitempty,max=20"`
	EmployeeNumber    *string        `json:"employeeNumber,omitempty" validate:"omitempty,max=50"`
	ExternalUserID    *string        `json:"userId,omitempty" validate:"omitempty,max=100"`
	Gender            *Gender        `json:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	WorkforceType     *WorkforceType `json:"workforceType,omitempty" validate:"omitempty,oneof=REGULAR CONTRACT INTERN"`
	DateOfEmployment  *string        `json:"dateOfEmployment,omitempty" validate:"omitempty,date"`
	Country           *string        `json:"country,omitempty" validate:"omitempty,max=100"`
	City              *string        `json:"city,omitempty" validate:"omitempty,max=100"`
	DirectManager     *string        `json:"directManager,omitempty" validate:"omitempty,max=200"`
	DottedLineManager *string        `json:"dottedLineManager,omitempty" validate:"omitempty,max=200"`
	JobTitle          *string        `json:"jobTitle,omitempty" validate:"omitempty,max=100"`
}

func (p *Profile) apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = p.LastName
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = p.PhoneNumber
	}
	if p.DepartmentID != nil {
		u.DepartmentID = p.DepartmentID
	}
	if p.AttendanceGroupID != nil {
		u.AttendanceGroupID = p.AttendanceGroupID
	}
	if p.Alias != nil {
		u.Alias = p.Alias
	}
	if p.DeskID != nil {
		u.DeskID = p.DeskID
	}
	if p.PhoneExtension != nil {
		u.PhoneExtension = p.PhoneExtension
	}
	if p.EmployeeNumber != nil {
		u.EmployeeNumber = p.EmployeeNumber
	}
	if p.ExternalUserID != nil {
		u.ExternalUserID = p.ExternalUserID
	}
	if p.Gender != nil {
		u.Gender = p.Gender
	}
	if p.WorkforceType != nil {
		u.WorkforceType = p.WorkforceType
	}
	if p.DateOfEmployment != nil {
		if d, ok := validator.IsValidDate(*p.DateOfEmployment); ok {
			u.DateOfEmployment = &d
		}
	}
	if p.Country != nil {
		u.Country = p.Country
	}
	if p.City != nil {
		u.City = p.City
	}
	if p.DirectManager != nil {
		u.DirectManager = p.DirectManager
	}
	if p.DottedLineManager != nil {
		u.DottedLineManager = p.DottedLineManager
	}
	if p.JobTitle != nil {
		u.JobTitle = p.JobTitle
	}
}

type CreateUserRequest struct {
	Name  string  `json:"name" validate:"required,notblank,max=200"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Roles []Role  `json:"roles,omitempty" validate:"omitempty,dive,oneof=EMPLOYEE MANAGER HR_ADMIN ADMIN"`
	Profile
}

// Normalize trims the name and lowercases the email so validation sees the
// stored form. A blank email is dropped and later replaced by a placeholder.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Email != nil {
		email := NormalizeEmail(*r.Email)
		r.Email = &email
		if email == "" {
			r.Email = nil
		}
	}
}

func (r *CreateUserRequest) Validate() error {
	return validator.Struct(r)
}

// ToUser builds an invited member. Username and password hash are set by the caller.
func (r *CreateUserRequest) ToUser() User {
	u := User{
		FirstName: strings.TrimSpace(r.Name),
		Status:    StatusInactive,
		Roles:     r.Roles,
	}
	if len(u.Roles) == 0 {
		u.Roles = []Role{RoleEmployee}
	}
	if r.Email != nil {
		u.Email = NormalizeEmail(*r.Email)
	}
	r.Profile.apply(&u)
	return u
}

type UpdateUserRequest struct {
	ID    int64   `json:"-"`
	Name  *string `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Roles []Role  `json:"roles,omitempty" validate:"omitempty,dive,oneof=EMPLOYEE MANAGER HR_ADMIN ADMIN"`
	Profile
}

func (r *UpdateUserRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Email != nil {
		email := NormalizeEmail(*r.Email)
		r.Email = &email
	}
}

func (r *UpdateUserRequest) Validate() error {
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

// Apply writes the present fields onto u. Name maps to the first name and is
// overridden by an explicit firstName.
func (r *UpdateUserRequest) Apply(u *User) {
	if r.Name != nil {
		u.FirstName = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		u.Email = NormalizeEmail(*r.Email)
	}
	if len(r.Roles) > 0 {
		u.Roles = r.Roles
	}
	r.Profile.apply(u)
}

type ResetPasswordRequest struct {
	ID               int64   `json:"-"`
	Password         *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	GenerateBySystem bool    `json:"generateBySystem"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.ID <= 0 {
		errs.Add("id", "id is required")
	}
	if !r.GenerateBySystem && (r.Password == nil || *r.Password == "") {
		errs.Add("password", "password is required unless generateBySystem is set")
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

type ResetPasswordResponse struct {
	Message           string  `json:"message"`
	GeneratedPassword *string `json:"generatedPassword,omitempty"`
}

type ListFilter struct {
	Search string
	Status Status
	Page   page.Request
}

var SortColumns = map[string]string{
	"id":        "u.id",
	"email":     "u.email",
	"firstName": "u.first_name",
	"lastName":  "u.last_name",
	"createdAt": "u.created_at",
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UsernameBase derives the username stem from a display name: lowercase ASCII
// letters and digits only.
func UsernameBase(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TempEmail is the placeholder address for members invited without one.
func TempEmail(username string) string {
	return username + "@temp.local"
}
