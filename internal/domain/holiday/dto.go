package holiday

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sportcenter/shift-manager/internal/pkg/validator"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type HolidayResponse struct {
	ID          string `json:"id,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Date:        worktime.FormatDate(h.Date),
		Description: h.Description,
	}
}

type CheckHolidayResponse struct {
	Date        string `json:"date"`
	Holiday     bool   `json:"holiday"`
	Description string `json:"description,omitempty"`
}

type ListHolidaysRequest struct {
	StartDate string
	EndDate   string

	start, end time.Time
}

// Range returns the parsed bounds; ok is false when no range was requested.
func (r *ListHolidaysRequest) Range() (time.Time, time.Time, bool) {
	return r.start, r.end, !r.start.IsZero()
}

func (r *ListHolidaysRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate == "" && r.EndDate == "" {
		return nil
	}
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	r.start, r.end = start, end
	return nil
}

type CreateHolidayRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`

	date time.Time
}

func (r *CreateHolidayRequest) ParsedDate() time.Time { return r.date }

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	r.Description = strings.TrimSpace(r.Description)
	if r.Description == "" {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	}
	if utf8.RuneCountInString(r.Description) > 100 {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description must not exceed 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	r.date = date
	return nil
}
