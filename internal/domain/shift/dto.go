package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/pkg/validator"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type ShiftResponse struct {
	ID                 string         `json:"id"`
	EmployeeID         string         `json:"employee_id"`
	EmployeeName       string         `json:"employee_name"`
	EmployeeNationalID string         `json:"employee_national_id"`
	CompanyID          string         `json:"company_id"`
	CompanyName        string         `json:"company_name"`
	StoreID            string         `json:"store_id"`
	StoreName          string         `json:"store_name"`
	Date               string         `json:"date"`
	EntryTime          worktime.Clock `json:"entry_time"`
	ExitTime           worktime.Clock `json:"exit_time"`
	WorkedHours        float64        `json:"worked_hours"`
	TookLunch          bool           `json:"took_lunch"`
	// TotalHours is the employee's total within the query scope.
	TotalHours float64 `json:"total_hours"`
	Holiday    bool    `json:"holiday"`
}

// ToResponse converts a shift. Worked hours and lunch are always derived from
// the stored times.
func ToResponse(s Shift, totalHours float64) ShiftResponse {
	return ShiftResponse{
		ID:                 s.ID,
		EmployeeID:         s.EmployeeID,
		EmployeeName:       s.EmployeeName,
		EmployeeNationalID: s.EmployeeNationalID,
		CompanyID:          s.CompanyID,
		CompanyName:        s.CompanyName,
		StoreID:            s.StoreID,
		StoreName:          s.StoreName,
		Date:               worktime.FormatDate(s.Date),
		EntryTime:          s.EntryTime,
		ExitTime:           s.ExitTime,
		WorkedHours:        s.WorkedHours(),
		TookLunch:          s.TookLunch(),
		TotalHours:         totalHours,
		Holiday:            s.Holiday,
	}
}

// Classify returns a copy of shifts with the holiday flag recomputed from cal.
func Classify(shifts []Shift, cal holiday.Calendar) []Shift {
	out := make([]Shift, len(shifts))
	for i, s := range shifts {
		s.Holiday = cal.IsHoliday(s.Date)
		out[i] = s
	}
	return out
}

// ClassifyRange recomputes the holiday flag of shifts dated within
// [start, end] from o. Stored flags are written and shown through this.
func ClassifyRange(ctx context.Context, o holiday.Oracle, shifts []Shift, start, end time.Time) ([]Shift, error) {
	if len(shifts) == 0 {
		return shifts, nil
	}
	cal, err := holiday.CalendarFor(ctx, o, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	return Classify(shifts, cal), nil
}

// HolidayOnly keeps the shifts flagged as holidays.
func HolidayOnly(shifts []Shift) []Shift {
	out := make([]Shift, 0, len(shifts))
	for _, s := range shifts {
		if s.Holiday {
			out = append(out, s)
		}
	}
	return out
}

// ToResponses annotates every shift with its employee's total from totals.
func ToResponses(shifts []Shift, totals worktime.Totals) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, ToResponse(s, totals.Hours(s.EmployeeID)))
	}
	return out
}

type CreateShiftRequest struct {
	EmployeeID string `json:"employee_id"`
	StoreID    string `json:"store_id"`
	Date       string `json:"date"`
	EntryTime  string `json:"entry_time"`
	ExitTime   string `json:"exit_time"`

	date        time.Time
	entry, exit worktime.Clock
}

func (r *CreateShiftRequest) Validate() error {
	errs := validateFields(r.EmployeeID, r.StoreID, r.Date, r.EntryTime, r.ExitTime, &r.date, &r.entry, &r.exit)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Shift builds the entity from a validated request.
func (r *CreateShiftRequest) Shift() Shift {
	return Shift{
		EmployeeID: r.EmployeeID,
		StoreID:    r.StoreID,
		Date:       r.date,
		EntryTime:  r.entry,
		ExitTime:   r.exit,
	}
}

// UpdateShiftRequest replaces every mutable field of a shift.
type UpdateShiftRequest struct {
	ID         string `json:"-"`
	EmployeeID string `json:"employee_id"`
	StoreID    string `json:"store_id"`
	Date       string `json:"date"`
	EntryTime  string `json:"entry_time"`
	ExitTime   string `json:"exit_time"`

	date        time.Time
	entry, exit worktime.Clock
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	errs = append(errs, validateFields(r.EmployeeID, r.StoreID, r.Date, r.EntryTime, r.ExitTime, &r.date, &r.entry, &r.exit)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateShiftRequest) Shift() Shift {
	return Shift{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		StoreID:    r.StoreID,
		Date:       r.date,
		EntryTime:  r.entry,
		ExitTime:   r.exit,
	}
}

func validateFields(employeeID, storeID, date, entry, exit string, outDate *time.Time, outEntry, outExit *worktime.Clock) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	} else if !validator.IsValidUUID(employeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}

	if validator.IsEmpty(storeID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store_id is required"})
	} else if !validator.IsValidUUID(storeID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store_id must be a valid UUID"})
	}

	if validator.IsEmpty(date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if d, ok := validator.IsValidDate(date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	} else {
		*outDate = d
	}

	entryOK, exitOK := false, false
	if validator.IsEmpty(entry) {
		errs = append(errs, validator.ValidationError{Field: "entry_time", Message: "entry_time is required"})
	} else if c, ok := validator.IsValidClock(entry); !ok {
		errs = append(errs, validator.ValidationError{Field: "entry_time", Message: "entry_time must be in HH:MM format"})
	} else {
		*outEntry, entryOK = c, true
	}

	if validator.IsEmpty(exit) {
		errs = append(errs, validator.ValidationError{Field: "exit_time", Message: "exit_time is required"})
	} else if c, ok := validator.IsValidClock(exit); !ok {
		errs = append(errs, validator.ValidationError{Field: "exit_time", Message: "exit_time must be in HH:MM format"})
	} else {
		*outExit, exitOK = c, true
	}

	if entryOK && exitOK && !outExit.After(*outEntry) {
		errs = append(errs, validator.ValidationError{Field: "exit_time", Message: ErrExitNotAfterEntry.Error()})
	}

	return errs
}

type MonthlyShiftsRequest struct {
	Month      int
	Year       int
	EmployeeID string
}

func (r *MonthlyShiftsRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: worktime.ErrInvalidMonth.Error()})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a four digit year"})
	}
	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
