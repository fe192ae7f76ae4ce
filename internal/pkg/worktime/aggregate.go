package worktime

import "time"

// Record is the slice of a shift the aggregation needs.
type Record struct {
	EmployeeID string
	Date       time.Time
	Entry      Clock
	Exit       Clock
	Holiday    bool
}

// Tally holds one employee's totals for a scope.
type Tally struct {
	EmployeeID     string
	Shifts         int
	WorkedMinutes  int
	HolidayMinutes int
	HolidayDays    int
}

func (t Tally) Hours() float64        { return MinutesToHours(t.WorkedMinutes) }
func (t Tally) HolidayHours() float64 { return MinutesToHours(t.HolidayMinutes) }

// Totals maps employee id to its tally and remembers first-seen order.
type Totals struct {
	byEmployee map[string]*Tally
	order      []string
}

// Aggregate sums every record into per-employee tallies in a single pass.
// Holiday days are counted once per distinct date, while holiday minutes add
// up across all shifts on that date.
func Aggregate(records []Record) Totals {
	totals := Totals{byEmployee: make(map[string]*Tally)}
	holidayDates := make(map[string]map[time.Time]struct{})

	for _, r := range records {
		t, ok := totals.byEmployee[r.EmployeeID]
		if !ok {
			t = &Tally{EmployeeID: r.EmployeeID}
			totals.byEmployee[r.EmployeeID] = t
			totals.order = append(totals.order, r.EmployeeID)
		}

		minutes := WorkedMinutes(r.Entry, r.Exit)
		t.Shifts++
		t.WorkedMinutes += minutes

		if !r.Holiday {
			continue
		}
		t.HolidayMinutes += minutes
		dates, ok := holidayDates[r.EmployeeID]
		if !ok {
			dates = make(map[time.Time]struct{})
			holidayDates[r.EmployeeID] = dates
		}
		day := DateOf(r.Date)
		if _, seen := dates[day]; !seen {
			dates[day] = struct{}{}
			t.HolidayDays++
		}
	}

	return totals
}

// Get returns the tally for an employee; employees without records get a
// zero tally.
func (t Totals) Get(employeeID string) Tally {
	if tally, ok := t.byEmployee[employeeID]; ok {
		return *tally
	}
	return Tally{EmployeeID: employeeID}
}

// Hours returns the employee's worked hours in scope.
func (t Totals) Hours(employeeID string) float64 {
	return t.Get(employeeID).Hours()
}

// Len returns the number of employees with at least one record.
func (t Totals) Len() int { return len(t.order) }

// Tallies returns all tallies in first-seen order.
func (t Totals) Tallies() []Tally {
	out := make([]Tally, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.byEmployee[id])
	}
	return out
}
