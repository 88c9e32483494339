package shift

import "errors"

var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrDuplicateShiftCode = errors.New("shift code already exists")
	ErrInvalidClock       = errors.New("time must be in HH:mm format")
)
