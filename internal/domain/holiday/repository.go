package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	ExistsByDate(ctx context.Context, date time.Time) (bool, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	// ListBetween returns holidays in [start, end] ordered by date.
	ListBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// Upsert inserts or renames the holiday on h.Date.
	Upsert(ctx context.Context, h Holiday) error
}
