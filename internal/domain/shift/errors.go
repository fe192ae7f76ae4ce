package shift

import "errors"

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrExitNotAfterEntry = errors.New("exit time must be after entry time")
)
