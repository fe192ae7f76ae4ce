package holiday

import (
	"time"

	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type Holiday struct {
	ID          string
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

// Calendar is an exact-match set of holiday dates.
type Calendar struct {
	dates map[time.Time]string
}

// NewCalendar indexes holidays by calendar date.
func NewCalendar(holidays []Holiday) Calendar {
	c := Calendar{dates: make(map[time.Time]string, len(holidays))}
	for _, h := range holidays {
		c.dates[worktime.DateOf(h.Date)] = h.Description
	}
	return c
}

func (c Calendar) IsHoliday(date time.Time) bool {
	_, ok := c.dates[worktime.DateOf(date)]
	return ok
}

// Description returns the holiday name for date, or "".
func (c Calendar) Description(date time.Time) string {
	return c.dates[worktime.DateOf(date)]
}

func (c Calendar) Len() int { return len(c.dates) }
