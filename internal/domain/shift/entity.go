package shift

import (
	"time"

	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type Shift struct {
	ID         string
	EmployeeID string
	StoreID    string
	// CompanyID is the employee's company at the time of the last write.
	CompanyID string
	Date      time.Time
	EntryTime worktime.Clock
	ExitTime  worktime.Clock
	// Holiday is the flag stored at write time. Reads recompute it.
	Holiday   bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated by repository reads.
	EmployeeName       string
	EmployeeNationalID string
	CompanyName        string
	StoreName          string
}

func (s Shift) WorkedHours() float64 {
	return worktime.Hours(s.EntryTime, s.ExitTime)
}

func (s Shift) TookLunch() bool {
	return worktime.TookLunch(s.EntryTime, s.ExitTime)
}

// Record projects the shift for aggregation.
func (s Shift) Record() worktime.Record {
	return worktime.Record{
		EmployeeID: s.EmployeeID,
		Date:       s.Date,
		Entry:      s.EntryTime,
		Exit:       s.ExitTime,
		Holiday:    s.Holiday,
	}
}

func Records(shifts []Shift) []worktime.Record {
	out := make([]worktime.Record, len(shifts))
	for i, s := range shifts {
		out[i] = s.Record()
	}
	return out
}
