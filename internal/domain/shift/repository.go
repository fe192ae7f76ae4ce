package shift

import (
	"context"
	"time"
)

// ShiftRepository lists are ordered by date then entry time unless noted.
// Date ranges are inclusive.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	Update(ctx context.Context, s Shift) (Shift, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Shift, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]Shift, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]Shift, error)
	ListByEmployeeAndDateRange(ctx context.Context, employeeID string, start, end time.Time) ([]Shift, error)
	ListByEmployeesAndDateRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]Shift, error)
	ListByStoreAndDateRange(ctx context.Context, storeID string, start, end time.Time) ([]Shift, error)

	// SetHolidayFlag rewrites the stored flag of the given shifts.
	SetHolidayFlag(ctx context.Context, ids []string, holiday bool) (int64, error)
	// SetHolidayFlagByDate rewrites the stored flag of every shift on date.
	SetHolidayFlagByDate(ctx context.Context, date time.Time, holiday bool) (int64, error)
}
