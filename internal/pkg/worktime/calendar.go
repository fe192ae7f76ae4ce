package worktime

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Day returns the calendar date y-m-d as UTC midnight.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf truncates t to its calendar date (UTC midnight), keeping the
// wall-clock date as seen in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Day(y, m, d)
}

// ParseDate parses an ISO date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthRange returns the first and last day of the month.
func MonthRange(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	first := Day(year, time.Month(month), 1)
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

// WeekStart returns the Monday on or before d.
func WeekStart(d time.Time) time.Time {
	d = DateOf(d)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDate(0, 0, -(weekday - 1))
}

// WeekOf returns the Monday..Sunday range containing d.
func WeekOf(d time.Time) (time.Time, time.Time) {
	start := WeekStart(d)
	return start, start.AddDate(0, 0, 6)
}

// Bucket is one run of consecutive dates of a partitioned month.
type Bucket struct {
	Index int // 1-based
	Dates []time.Time
}

func (b Bucket) Start() time.Time { return b.Dates[0] }
func (b Bucket) End() time.Time   { return b.Dates[len(b.Dates)-1] }

// Contains reports whether d falls within the bucket.
func (b Bucket) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(b.Start()) && !d.After(b.End())
}

// ISODates returns the bucket dates formatted as YYYY-MM-DD.
func (b Bucket) ISODates() []string {
	out := make([]string, len(b.Dates))
	for i, d := range b.Dates {
		out[i] = FormatDate(d)
	}
	return out
}

// PartitionMonth splits a month into week buckets. Days before the first
// Monday form a leading bucket; the remaining days are cut into runs of up to
// seven days starting on Monday, so only the last run can be short.
func PartitionMonth(month, year int) ([]Bucket, error) {
	first, last, err := MonthRange(month, year)
	if err != nil {
		return nil, err
	}

	var buckets []Bucket
	emit := func(dates []time.Time) {
		buckets = append(buckets, Bucket{Index: len(buckets) + 1, Dates: dates})
	}

	day := first
	var leading []time.Time
	for day.Weekday() != time.Monday && !day.After(last) {
		leading = append(leading, day)
		day = day.AddDate(0, 0, 1)
	}
	if len(leading) > 0 {
		emit(leading)
	}

	for !day.After(last) {
		run := make([]time.Time, 0, 7)
		for i := 0; i < 7 && !day.After(last); i++ {
			run = append(run, day)
			day = day.AddDate(0, 0, 1)
		}
		emit(run)
	}

	return buckets, nil
}

// BucketAt returns the 1-based week of a partitioned month or a
// *WeekRangeError.
func BucketAt(buckets []Bucket, week int) (Bucket, error) {
	if week < 1 || week > len(buckets) {
		err := &WeekRangeError{Week: week, Count: len(buckets)}
		if len(buckets) > 0 {
			first := buckets[0].Start()
			err.Month, err.Year = int(first.Month()), first.Year()
		}
		return Bucket{}, err
	}
	return buckets[week-1], nil
}
