package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sportcenter/shift-manager/internal/domain/auth"
	"github.com/sportcenter/shift-manager/internal/domain/company"
	"github.com/sportcenter/shift-manager/internal/domain/employee"
	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/domain/shift"
	"github.com/sportcenter/shift-manager/internal/domain/store"
	"github.com/sportcenter/shift-manager/internal/pkg/validator"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Week index outside the month partition; the message names the bound.
	var weekErr *worktime.WeekRangeError
	if errors.As(err, &weekErr) {
		BadRequest(w, weekErr.Error(), map[string]string{"week": weekErr.Error()})
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrExitNotAfterEntry):
		ValidationError(w, map[string]string{"exit_time": err.Error()})

	// Collaborators
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, store.ErrStoreNotFound):
		NotFound(w, "Store not found")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayDateExists):
		Conflict(w, "A holiday already exists on that date")
	case errors.Is(err, holiday.ErrHolidayReadOnly):
		Conflict(w, "Holidays come from a static table and cannot be changed")

	case errors.Is(err, worktime.ErrInvalidMonth):
		ValidationError(w, map[string]string{"month": err.Error()})

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
