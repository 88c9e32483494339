package attendancegroup

import "errors"

var (
	ErrAttendanceGroupNotFound = errors.New("attendance group not found")
	ErrDuplicateGroupName      = errors.New("attendance group with this name already exists")
	ErrDefaultShiftNotFound    = errors.New("default shift not found")
	ErrWeeklyShiftNotFound     = errors.New("weekly schedule references a shift that does not exist")
	ErrInvalidWeekday          = errors.New("invalid weekday")
)
