package report

import (
	"time"

	"github.com/sportcenter/shift-manager/internal/domain/shift"
	"github.com/sportcenter/shift-manager/internal/pkg/validator"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

// ========================================
// SHARED
// ========================================

type EmployeeTotal struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Shifts       int     `json:"shifts"`
	TotalHours   float64 `json:"total_hours"`
}

// ShiftsReport is the payload of every flat listing: the shifts in scope,
// each annotated with its employee's scope total, plus the totals themselves.
type ShiftsReport struct {
	StartDate string                `json:"start_date"`
	EndDate   string                `json:"end_date"`
	Shifts    []shift.ShiftResponse `json:"shifts"`
	Totals    []EmployeeTotal       `json:"totals"`
}

type dateRange struct {
	start, end time.Time
}

func (r dateRange) Start() time.Time { return r.start }
func (r dateRange) End() time.Time   { return r.end }

func parseRange(startStr, endStr string) (dateRange, validator.ValidationErrors) {
	var errs validator.ValidationErrors
	start, ok := validator.IsValidDate(startStr)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, ok := validator.IsValidDate(endStr)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: ErrInvalidRange.Error()})
	}
	return dateRange{start: start, end: end}, errs
}

func validateMonthYear(month, year int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: worktime.ErrInvalidMonth.Error()})
	}
	if !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a four digit year"})
	}
	return errs
}

func validateIDs(field string, ids []string) validator.ValidationErrors {
	if bad := validator.InvalidUUIDs(ids); len(bad) > 0 {
		return validator.ValidationErrors{{Field: field, Message: "invalid UUID: " + bad[0]}}
	}
	return nil
}

// ========================================
// WEEK VIEW
// ========================================

type WeekViewRequest struct {
	Date string

	date time.Time
}

func (r *WeekViewRequest) Validate() error {
	d, ok := validator.IsValidDate(r.Date)
	if !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	r.date = d
	return nil
}

func (r *WeekViewRequest) ParsedDate() time.Time { return r.date }

// ========================================
// STRICT WEEK / MONTH PARTITION
// ========================================

type StrictWeekRequest struct {
	Week  int
	Month int
	Year  int
}

func (r *StrictWeekRequest) Validate() error {
	// The week bound depends on the month and is checked by the partitioner.
	if errs := validateMonthYear(r.Month, r.Year); len(errs) > 0 {
		return errs
	}
	return nil
}

type StrictWeekReport struct {
	Week      int `json:"week"`
	WeekCount int `json:"week_count"`
	Month     int `json:"month"`
	Year      int `json:"year"`
	ShiftsReport
}

type MonthWeeksRequest struct {
	Month      int
	Year       int
	WithTotals bool
}

func (r *MonthWeeksRequest) Validate() error {
	if errs := validateMonthYear(r.Month, r.Year); len(errs) > 0 {
		return errs
	}
	return nil
}

type WeekBucket struct {
	Week      int             `json:"week"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Dates     []string        `json:"dates"`
	Totals    []EmployeeTotal `json:"totals,omitempty"`
}

type MonthWeeksReport struct {
	Month int          `json:"month"`
	Year  int          `json:"year"`
	Weeks []WeekBucket `json:"weeks"`
}

// ========================================
// DATE RANGE REPORTS
// ========================================

type StoreRangeRequest struct {
	StoreID   string
	StartDate string
	EndDate   string

	dateRange
}

func (r *StoreRangeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store_id is required"})
	} else if !validator.IsValidUUID(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store_id must be a valid UUID"})
	}
	rng, rangeErrs := parseRange(r.StartDate, r.EndDate)
	errs = append(errs, rangeErrs...)
	if len(errs) > 0 {
		return errs
	}
	r.dateRange = rng
	return nil
}

// EmployeeRangeRequest drives the worked-hours and holiday reports. An empty
// id list yields an empty report.
type EmployeeRangeRequest struct {
	EmployeeIDs []string
	StartDate   string
	EndDate     string

	dateRange
}

func (r *EmployeeRangeRequest) Validate() error {
	errs := validateIDs("employees", r.EmployeeIDs)
	rng, rangeErrs := parseRange(r.StartDate, r.EndDate)
	errs = append(errs, rangeErrs...)
	if len(errs) > 0 {
		return errs
	}
	r.dateRange = rng
	return nil
}

// ========================================
// MONTHLY SUMMARY
// ========================================

// MonthlySummaryRequest covers every employee when EmployeeIDs is empty.
type MonthlySummaryRequest struct {
	EmployeeIDs []string
	Month       int
	Year        int
}

func (r *MonthlySummaryRequest) Validate() error {
	r.EmployeeIDs = validator.Unique(r.EmployeeIDs)
	errs := validateMonthYear(r.Month, r.Year)
	errs = append(errs, validateIDs("employees", r.EmployeeIDs)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeMonthlySummary struct {
	EmployeeID        string                `json:"employee_id"`
	EmployeeName      string                `json:"employee_name"`
	TotalHours        float64               `json:"total_hours"`
	HolidayDaysWorked int                   `json:"holiday_days_worked"`
	HolidayHours      float64               `json:"holiday_hours"`
	Shifts            []shift.ShiftResponse `json:"shifts"`
}

type MonthlySummaryReport struct {
	Month     int                      `json:"month"`
	Year      int                      `json:"year"`
	StartDate string                   `json:"start_date"`
	EndDate   string                   `json:"end_date"`
	Employees []EmployeeMonthlySummary `json:"employees"`
}
