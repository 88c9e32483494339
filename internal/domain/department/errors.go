package department

import "errors"

var (
	ErrDepartmentNotFound    = errors.New("department not found")
	ErrParentNotFound        = errors.New("parent department not found")
	ErrDepartmentNameExists  = errors.New("department with this name already exists under the same parent")
	ErrDepartmentHasChildren = errors.New("department has sub-departments")
	ErrDepartmentCycle       = errors.New("department cannot be moved under itself or its descendants")
)
