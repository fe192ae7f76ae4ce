package holiday

import "errors"

var (
	ErrHolidayNotFound   = errors.New("holiday not found")
	ErrHolidayDateExists = errors.New("a holiday already exists on this date")
	ErrHolidayReadOnly   = errors.New("holiday table is read-only for the configured source")
)
