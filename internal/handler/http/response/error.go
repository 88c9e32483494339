package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/attendancegroup"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var rateLimitErr *auth.RateLimitError
	if errors.As(err, &rateLimitErr) {
		TooManyRequests(w, "Too many login attempts. Please try again later.", rateLimitErr.RetryAfter)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		InvalidCredentials(w)
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "SHIFT_NOT_FOUND", "Shift not found")
	case errors.Is(err, shift.ErrDuplicateShiftCode):
		Conflict(w, "DUPLICATE_SHIFT_CODE", "Shift code already exists")
	case errors.Is(err, shift.ErrInvalidClock):
		ValidationError(w, map[string]string{"time": err.Error()})

	// Attendance group domain errors
	case errors.Is(err, attendancegroup.ErrAttendanceGroupNotFound):
		NotFound(w, "ATTENDANCE_GROUP_NOT_FOUND", "Attendance group not found")
	case errors.Is(err, attendancegroup.ErrDuplicateGroupName):
		Conflict(w, "DUPLICATE_GROUP_NAME", "Attendance group with this name already exists")
	case errors.Is(err, attendancegroup.ErrDefaultShiftNotFound):
		BadRequestCode(w, "DEFAULT_SHIFT_NOT_FOUND", "Default shift not found")
	case errors.Is(err, attendancegroup.ErrWeeklyShiftNotFound):
		BadRequestCode(w, "WEEKLY_SHIFT_NOT_FOUND", err.Error())
	case errors.Is(err, attendancegroup.ErrInvalidWeekday):
		BadRequest(w, "Invalid weekday", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "EMAIL_CONFLICT", "Email already registered")
	case errors.Is(err, user.ErrUsernameUnavailable):
		Conflict(w, "USERNAME_CONFLICT", "Could not derive a unique username")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "DEPARTMENT_NOT_FOUND", "Department not found")
	case errors.Is(err, department.ErrParentNotFound):
		BadRequestCode(w, "PARENT_DEPARTMENT_NOT_FOUND", "Parent department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "DEPARTMENT_NAME_CONFLICT", "Department with this name already exists under the same parent")
	case errors.Is(err, department.ErrDepartmentHasChildren):
		Conflict(w, "DEPARTMENT_HAS_CHILDREN", "Department has sub-departments")
	case errors.Is(err, department.ErrDepartmentCycle):
		BadRequestCode(w, "DEPARTMENT_CYCLE", "Department cannot be moved under itself or its descendants")

	// Default
	default:
		InternalServerError(w, err)
	}
}
