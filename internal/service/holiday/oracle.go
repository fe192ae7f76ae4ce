package holiday

import (
	"context"
	"sort"
	"time"

	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

// Source is an oracle that can also enumerate its whole table.
type Source interface {
	holiday.Oracle
	All(ctx context.Context) ([]holiday.Holiday, error)
}

// RepositoryOracle answers from persisted holiday records.
type RepositoryOracle struct {
	repo holiday.HolidayRepository
}

func NewRepositoryOracle(repo holiday.HolidayRepository) *RepositoryOracle {
	return &RepositoryOracle{repo: repo}
}

// IsHoliday answers through the same range lookup reports use.
func (o *RepositoryOracle) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	date = worktime.DateOf(date)
	cal, err := holiday.CalendarFor(ctx, o, date, date)
	if err != nil {
		return false, err
	}
	return cal.IsHoliday(date), nil
}

func (o *RepositoryOracle) Between(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	return o.repo.ListBetween(ctx, worktime.DateOf(start), worktime.DateOf(end))
}

func (o *RepositoryOracle) All(ctx context.Context) ([]holiday.Holiday, error) {
	return o.repo.List(ctx)
}

// StaticOracle answers from a fixed table loaded at startup.
type StaticOracle struct {
	holidays []holiday.Holiday
	calendar holiday.Calendar
}

func NewStaticOracle(holidays []holiday.Holiday) *StaticOracle {
	sorted := make([]holiday.Holiday, len(holidays))
	copy(sorted, holidays)
	for i := range sorted {
		sorted[i].Date = worktime.DateOf(sorted[i].Date)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return &StaticOracle{holidays: sorted, calendar: holiday.NewCalendar(sorted)}
}

func (o *StaticOracle) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	return o.calendar.IsHoliday(date), nil
}

func (o *StaticOracle) Between(_ context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	start, end = worktime.DateOf(start), worktime.DateOf(end)
	i := sort.Search(len(o.holidays), func(i int) bool { return !o.holidays[i].Date.Before(start) })
	out := make([]holiday.Holiday, 0)
	for ; i < len(o.holidays) && !o.holidays[i].Date.After(end); i++ {
		out = append(out, o.holidays[i])
	}
	return out, nil
}

func (o *StaticOracle) All(_ context.Context) ([]holiday.Holiday, error) {
	out := make([]holiday.Holiday, len(o.holidays))
	copy(out, o.holidays)
	return out, nil
}
