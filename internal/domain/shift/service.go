package shift

import (
	"context"
	"time"
)

type ShiftService interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (ShiftResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]ShiftResponse, error)
	ListMonthly(ctx context.Context, req MonthlyShiftsRequest) ([]ShiftResponse, error)
	// ReconcileHolidayFlags re-derives the stored holiday flag for shifts in
	// [start, end] and returns how many rows changed.
	ReconcileHolidayFlags(ctx context.Context, start, end time.Time) (int, error)
}
