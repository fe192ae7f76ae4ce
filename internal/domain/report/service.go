package report

import "context"

type ReportService interface {
	// WeekView returns the Monday-aligned week containing the date.
	WeekView(ctx context.Context, req WeekViewRequest) (ShiftsReport, error)
	// StrictWeek returns one bucket of the month partition.
	StrictWeek(ctx context.Context, req StrictWeekRequest) (StrictWeekReport, error)
	MonthWeeks(ctx context.Context, req MonthWeeksRequest) (MonthWeeksReport, error)
	StoreRange(ctx context.Context, req StoreRangeRequest) (ShiftsReport, error)
	WorkedHours(ctx context.Context, req EmployeeRangeRequest) (ShiftsReport, error)
	HolidayShifts(ctx context.Context, req EmployeeRangeRequest) (ShiftsReport, error)
	MonthlySummary(ctx context.Context, req MonthlySummaryRequest) (MonthlySummaryReport, error)
}
