package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sportcenter/shift-manager/internal/domain/shift"
	"github.com/sportcenter/shift-manager/internal/handler/http/response"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListMonthly(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// Create handles POST /shifts
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("Create shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.shiftService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created successfully", created)
}

// Update handles PUT /shifts/{id}
func (h *shiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("Update shift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.shiftService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated successfully", updated)
}

// Delete handles DELETE /shifts/{id}
func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// GetByID handles GET /shifts/{id}
func (h *shiftHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	found, err := h.shiftService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// ListByEmployee handles GET /employees/{employeeID}/shifts
func (h *shiftHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftService.ListByEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// ListMonthly handles GET /shifts/monthly
func (h *shiftHandlerImpl) ListMonthly(w http.ResponseWriter, r *http.Request) {
	month, year, err := queryMonthYear(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	shifts, err := h.shiftService.ListMonthly(r.Context(), shift.MonthlyShiftsRequest{
		Month:      month,
		Year:       year,
		EmployeeID: r.URL.Query().Get("employee_id"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}
