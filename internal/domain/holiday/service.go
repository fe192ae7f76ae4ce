package holiday

import (
	"context"
	"time"
)

// Oracle answers whether a calendar date is a holiday.
type Oracle interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	Between(ctx context.Context, start, end time.Time) ([]Holiday, error)
}

// CalendarFor loads the holidays in [start, end] into a Calendar.
func CalendarFor(ctx context.Context, o Oracle, start, end time.Time) (Calendar, error) {
	holidays, err := o.Between(ctx, start, end)
	if err != nil {
		return Calendar{}, err
	}
	return NewCalendar(holidays), nil
}

type HolidayService interface {
	Oracle
	List(ctx context.Context, req ListHolidaysRequest) ([]HolidayResponse, error)
	Check(ctx context.Context, date time.Time) (CheckHolidayResponse, error)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	// SeedDefaults loads the built-in table when no holiday exists yet and
	// reports how many rows were written.
	SeedDefaults(ctx context.Context) (int, error)
	Import(ctx context.Context, holidays []Holiday) (int, error)
}
