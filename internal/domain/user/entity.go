package user

import "time"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE" // Regular member
	RoleManager  Role = "MANAGER"  // Views team data
	RoleHRAdmin  Role = "HR_ADMIN" // Manages shifts, groups and members
	RoleAdmin    Role = "ADMIN"    // Full access
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE" // Invited, has not activated yet
	StatusLocked   Status = "LOCKED"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

type WorkforceType string

const (
	WorkforceRegular  WorkforceType = "REGULAR"
	WorkforceContract WorkforceType = "CONTRACT"
	WorkforceIntern   WorkforceType = "INTERN"
)

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     *string
	Status       Status
	Roles        []Role

	PhoneNumber       *string
	DepartmentID      *int64
	AttendanceGroupID *int64
	Alias             *string
	DeskID            *string
	PhoneExtension    *string
	EmployeeNumber    *string
	ExternalUserID    *string
	Gender            *Gender
	WorkforceType     *WorkforceType
	DateOfEmployment  *time.Time
	Country           *string
	City              *string
	DirectManager     *string
	DottedLineManager *string
	JobTitle          *string

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the user may sign in.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// HasRole checks if the user holds role
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == nil || *u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + *u.LastName
}
