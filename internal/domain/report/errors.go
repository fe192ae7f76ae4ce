package report

import (
	"errors"

	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

var (
	// ErrWeekOutOfRange matches any *worktime.WeekRangeError.
	ErrWeekOutOfRange = worktime.ErrWeekOutOfRange
	ErrInvalidRange   = errors.New("end_date must not be before start_date")
)
