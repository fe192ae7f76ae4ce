package worktime

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidClock   = errors.New("invalid time of day, use HH:MM")
	ErrInvalidMonth   = errors.New("month must be between 1 and 12")
	ErrWeekOutOfRange = errors.New("week number out of range")
)

// WeekRangeError is returned when a week index does not exist in a month.
type WeekRangeError struct {
	Week  int
	Month int
	Year  int
	Count int
}

func (e *WeekRangeError) Error() string {
	return fmt.Sprintf("week %d is not valid for %02d/%d: the month has %d weeks (valid range 1-%d)",
		e.Week, e.Month, e.Year, e.Count, e.Count)
}

func (e *WeekRangeError) Is(target error) bool {
	return target == ErrWeekOutOfRange
}
