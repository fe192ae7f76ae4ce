package worktime

import "github.com/shopspring/decimal"

// Lunch policy. A shift that starts before 12:01 and ends after 13:00 is
// considered to cover lunch and loses exactly 45 minutes, once.
var (
	lunchCoverStart = NewClock(12, 1)
	lunchCoverEnd   = NewClock(13, 0)
)

const LunchDeductionMinutes = 45

var sixty = decimal.NewFromInt(60)

// TookLunch reports whether the interval covers the lunch window.
func TookLunch(entry, exit Clock) bool {
	if entry.IsZero() || exit.IsZero() {
		return false
	}
	return entry.Before(lunchCoverStart) && exit.After(lunchCoverEnd)
}

// WorkedMinutes returns exit-entry net of the lunch deduction. Missing times
// yield 0 and negative intervals are clamped to 0.
func WorkedMinutes(entry, exit Clock) int {
	if entry.IsZero() || exit.IsZero() {
		return 0
	}
	minutes := exit.Minutes() - entry.Minutes()
	if TookLunch(entry, exit) {
		minutes -= LunchDeductionMinutes
	}
	if minutes < 0 {
		return 0
	}
	return minutes
}

// Hours is WorkedMinutes expressed in hours.
func Hours(entry, exit Clock) float64 {
	return MinutesToHours(WorkedMinutes(entry, exit))
}

// MinutesToHours converts a minute count to fractional hours.
func MinutesToHours(minutes int) float64 {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).InexactFloat64()
}
