package report

import (
	"context"
	"fmt"
	"time"

	"github.com/sportcenter/shift-manager/internal/domain/employee"
	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/domain/report"
	"github.com/sportcenter/shift-manager/internal/domain/shift"
	"github.com/sportcenter/shift-manager/internal/domain/store"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type ReportServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	storeRepo    store.StoreRepository
	oracle       holiday.Oracle
}

func NewReportService(shiftRepo shift.ShiftRepository, employeeRepo employee.EmployeeRepository, storeRepo store.StoreRepository, oracle holiday.Oracle) report.ReportService {
	return &ReportServiceImpl{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		storeRepo:    storeRepo,
		oracle:       oracle,
	}
}

// rangeReport annotates shifts with per-employee totals over the whole slice.
func rangeReport(shifts []shift.Shift, start, end time.Time) report.ShiftsReport {
	totals := worktime.Aggregate(shift.Records(shifts))
	return report.ShiftsReport{
		StartDate: worktime.FormatDate(start),
		EndDate:   worktime.FormatDate(end),
		Shifts:    shift.ToResponses(shifts, totals),
		Totals:    employeeTotals(shifts, totals),
	}
}

func employeeTotals(shifts []shift.Shift, totals worktime.Totals) []report.EmployeeTotal {
	names := make(map[string]string, totals.Len())
	for _, s := range shifts {
		if _, ok := names[s.EmployeeID]; !ok {
			names[s.EmployeeID] = s.EmployeeName
		}
	}

	out := make([]report.EmployeeTotal, 0, totals.Len())
	for _, t := range totals.Tallies() {
		out = append(out, report.EmployeeTotal{
			EmployeeID:   t.EmployeeID,
			EmployeeName: names[t.EmployeeID],
			Shifts:       t.Shifts,
			TotalHours:   t.Hours(),
		})
	}
	return out
}

func (s *ReportServiceImpl) dateRangeReport(ctx context.Context, start, end time.Time) (report.ShiftsReport, error) {
	shifts, err := s.shiftRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return report.ShiftsReport{}, err
	}
	if shifts, err = shift.ClassifyRange(ctx, s.oracle, shifts, start, end); err != nil {
		return report.ShiftsReport{}, err
	}
	return rangeReport(shifts, start, end), nil
}

// WeekView implements report.ReportService.
func (s *ReportServiceImpl) WeekView(ctx context.Context, req report.WeekViewRequest) (report.ShiftsReport, error) {
	if err := req.Validate(); err != nil {
		return report.ShiftsReport{}, err
	}
	start, end := worktime.WeekOf(req.ParsedDate())
	return s.dateRangeReport(ctx, start, end)
}

// StrictWeek implements report.ReportService.
func (s *ReportServiceImpl) StrictWeek(ctx context.Context, req report.StrictWeekRequest) (report.StrictWeekReport, error) {
	if err := req.Validate(); err != nil {
		return report.StrictWeekReport{}, err
	}
	buckets, err := worktime.PartitionMonth(req.Month, req.Year)
	if err != nil {
		return report.StrictWeekReport{}, err
	}
	bucket, err := worktime.BucketAt(buckets, req.Week)
	if err != nil {
		return report.StrictWeekReport{}, err
	}

	rep, err := s.dateRangeReport(ctx, bucket.Start(), bucket.End())
	if err != nil {
		return report.StrictWeekReport{}, err
	}
	return report.StrictWeekReport{
		Week:         bucket.Index,
		WeekCount:    len(buckets),
		Month:        req.Month,
		Year:         req.Year,
		ShiftsReport: rep,
	}, nil
}

// MonthWeeks implements report.ReportService. With totals, the month's
// shifts are fetched once and aggregated per bucket.
func (s *ReportServiceImpl) MonthWeeks(ctx context.Context, req report.MonthWeeksRequest) (report.MonthWeeksReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthWeeksReport{}, err
	}
	buckets, err := worktime.PartitionMonth(req.Month, req.Year)
	if err != nil {
		return report.MonthWeeksReport{}, err
	}

	var shifts []shift.Shift
	if req.WithTotals {
		first, last, _ := worktime.MonthRange(req.Month, req.Year)
		if shifts, err = s.shiftRepo.ListByDateRange(ctx, first, last); err != nil {
			return report.MonthWeeksReport{}, err
		}
	}

	weeks := make([]report.WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		wb := report.WeekBucket{
			Week:      b.Index,
			StartDate: worktime.FormatDate(b.Start()),
			EndDate:   worktime.FormatDate(b.End()),
			Dates:     b.ISODates(),
		}
		if req.WithTotals {
			var inBucket []shift.Shift
			for _, sh := range shifts {
				if b.Contains(sh.Date) {
					inBucket = append(inBucket, sh)
				}
			}
			wb.Totals = employeeTotals(inBucket, worktime.Aggregate(shift.Records(inBucket)))
		}
		weeks = append(weeks, wb)
	}

	return report.MonthWeeksReport{Month: req.Month, Year: req.Year, Weeks: weeks}, nil
}

// StoreRange implements report.ReportService.
func (s *ReportServiceImpl) StoreRange(ctx context.Context, req report.StoreRangeRequest) (report.ShiftsReport, error) {
	if err := req.Validate(); err != nil {
		return report.ShiftsReport{}, err
	}
	if _, err := s.storeRepo.GetByID(ctx, req.StoreID); err != nil {
		return report.ShiftsReport{}, err
	}

	shifts, err := s.shiftRepo.ListByStoreAndDateRange(ctx, req.StoreID, req.Start(), req.End())
	if err != nil {
		return report.ShiftsReport{}, err
	}
	if shifts, err = shift.ClassifyRange(ctx, s.oracle, shifts, req.Start(), req.End()); err != nil {
		return report.ShiftsReport{}, err
	}
	return rangeReport(shifts, req.Start(), req.End()), nil
}

func (s *ReportServiceImpl) employeeShifts(ctx context.Context, req report.EmployeeRangeRequest) ([]shift.Shift, error) {
	if len(req.EmployeeIDs) == 0 {
		return []shift.Shift{}, nil
	}
	shifts, err := s.shiftRepo.ListByEmployeesAndDateRange(ctx, req.EmployeeIDs, req.Start(), req.End())
	if err != nil {
		return nil, err
	}
	return shift.ClassifyRange(ctx, s.oracle, shifts, req.Start(), req.End())
}

// WorkedHours implements report.ReportService. No employee ids means an
// empty report, never every employee.
func (s *ReportServiceImpl) WorkedHours(ctx context.Context, req report.EmployeeRangeRequest) (report.ShiftsReport, error) {
	if err := req.Validate(); err != nil {
		return report.ShiftsReport{}, err
	}
	shifts, err := s.employeeShifts(ctx, req)
	if err != nil {
		return report.ShiftsReport{}, err
	}
	return rangeReport(shifts, req.Start(), req.End()), nil
}

// HolidayShifts implements report.ReportService. Totals are holiday hours.
func (s *ReportServiceImpl) HolidayShifts(ctx context.Context, req report.EmployeeRangeRequest) (report.ShiftsReport, error) {
	if err := req.Validate(); err != nil {
		return report.ShiftsReport{}, err
	}
	shifts, err := s.employeeShifts(ctx, req)
	if err != nil {
		return report.ShiftsReport{}, err
	}
	return rangeReport(shift.HolidayOnly(shifts), req.Start(), req.End()), nil
}

// MonthlySummary implements report.ReportService.
func (s *ReportServiceImpl) MonthlySummary(ctx context.Context, req report.MonthlySummaryRequest) (report.MonthlySummaryReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlySummaryReport{}, err
	}
	first, last, err := worktime.MonthRange(req.Month, req.Year)
	if err != nil {
		return report.MonthlySummaryReport{}, err
	}

	ids := req.EmployeeIDs
	if len(ids) == 0 {
		if ids, err = s.employeeRepo.ListIDs(ctx); err != nil {
			return report.MonthlySummaryReport{}, err
		}
	}

	employees, err := s.employeeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return report.MonthlySummaryReport{}, err
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return report.MonthlySummaryReport{}, fmt.Errorf("%w: %s", employee.ErrEmployeeNotFound, id)
		}
	}

	shifts, err := s.shiftRepo.ListByEmployeesAndDateRange(ctx, ids, first, last)
	if err != nil {
		return report.MonthlySummaryReport{}, err
	}
	if shifts, err = shift.ClassifyRange(ctx, s.oracle, shifts, first, last); err != nil {
		return report.MonthlySummaryReport{}, err
	}

	totals := worktime.Aggregate(shift.Records(shifts))
	grouped := make(map[string][]shift.ShiftResponse, len(ids))
	for _, sh := range shifts {
		grouped[sh.EmployeeID] = append(grouped[sh.EmployeeID], shift.ToResponse(sh, totals.Hours(sh.EmployeeID)))
	}

	rows := make([]report.EmployeeMonthlySummary, 0, len(ids))
	for _, id := range ids {
		tally := totals.Get(id)
		list := grouped[id]
		if list == nil {
			list = []shift.ShiftResponse{}
		}
		rows = append(rows, report.EmployeeMonthlySummary{
			EmployeeID:        id,
			EmployeeName:      byID[id].FullName(),
			TotalHours:        tally.Hours(),
			HolidayDaysWorked: tally.HolidayDays,
			HolidayHours:      tally.HolidayHours(),
			Shifts:            list,
		})
	}

	return report.MonthlySummaryReport{
		Month:     req.Month,
		Year:      req.Year,
		StartDate: worktime.FormatDate(first),
		EndDate:   worktime.FormatDate(last),
		Employees: rows,
	}, nil
}
