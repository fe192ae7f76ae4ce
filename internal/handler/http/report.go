package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sportcenter/shift-manager/internal/domain/report"
	"github.com/sportcenter/shift-manager/internal/handler/http/response"
)

type ReportHandler interface {
	// Week containing ?date=
	WeekView(w http.ResponseWriter, r *http.Request)

	// Month partition and one bucket of it
	MonthWeeks(w http.ResponseWriter, r *http.Request)
	StrictWeek(w http.ResponseWriter, r *http.Request)

	// Range reports
	StoreRange(w http.ResponseWriter, r *http.Request)
	WorkedHours(w http.ResponseWriter, r *http.Request)
	HolidayShifts(w http.ResponseWriter, r *http.Request)

	MonthlySummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// WeekView handles GET /shifts?date=
func (h *reportHandlerImpl) WeekView(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.WeekView(r.Context(), report.WeekViewRequest{
		Date: r.URL.Query().Get("date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthWeeks handles GET /shifts/weeks
func (h *reportHandlerImpl) MonthWeeks(w http.ResponseWriter, r *http.Request) {
	month, year, err := queryMonthYear(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}
	withTotals, err := queryBool(r, "with_totals")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.MonthWeeks(r.Context(), report.MonthWeeksRequest{
		Month:      month,
		Year:       year,
		WithTotals: withTotals,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StrictWeek handles GET /shifts/weeks/{week}
func (h *reportHandlerImpl) StrictWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		response.BadRequest(w, "invalid week parameter", nil)
		return
	}
	month, year, err := queryMonthYear(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.StrictWeek(r.Context(), report.StrictWeekRequest{
		Week:  week,
		Month: month,
		Year:  year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StoreRange handles GET /reports/store
func (h *reportHandlerImpl) StoreRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.reportService.StoreRange(r.Context(), report.StoreRangeRequest{
		StoreID:   q.Get("store_id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func employeeRange(r *http.Request) report.EmployeeRangeRequest {
	q := r.URL.Query()
	return report.EmployeeRangeRequest{
		EmployeeIDs: queryList(r, "employees"),
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
	}
}

// WorkedHours handles GET /reports/worked-hours
func (h *reportHandlerImpl) WorkedHours(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.WorkedHours(r.Context(), employeeRange(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// HolidayShifts handles GET /reports/holidays
func (h *reportHandlerImpl) HolidayShifts(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.HolidayShifts(r.Context(), employeeRange(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlySummary handles GET /reports/monthly-summary
func (h *reportHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	month, year, err := queryMonthYear(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	result, err := h.reportService.MonthlySummary(r.Context(), report.MonthlySummaryRequest{
		EmployeeIDs: queryList(r, "employees"),
		Month:       month,
		Year:        year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
