package report

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/sportcenter/shift-manager/internal/domain/employee"
	"github.com/sportcenter/shift-manager/internal/domain/report"
	"github.com/sportcenter/shift-manager/internal/domain/store"
	"github.com/sportcenter/shift-manager/internal/pkg/validator"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
	"github.com/sportcenter/shift-manager/internal/repository/sqlite"
	"github.com/sportcenter/shift-manager/internal/repository/sqlite/sqlitetest"
	holidayservice "github.com/sportcenter/shift-manager/internal/service/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	db     *sql.DB
	svc    report.ReportService
	storeA string
	storeB string
	ana    string
	luis   string
	rosa   string
}

func newReportFixture(t *testing.T) reportFixture {
	t.Helper()
	db := sqlitetest.Open(t)

	f := reportFixture{db: db}
	companyID := sqlitetest.SeedCompany(t, db, "Acme")
	f.storeA = sqlitetest.SeedStore(t, db, "Downtown")
	f.storeB = sqlitetest.SeedStore(t, db, "Mall")
	f.ana = sqlitetest.SeedEmployee(t, db, companyID, "Ana", "Quispe")
	f.luis = sqlitetest.SeedEmployee(t, db, companyID, "Luis", "Rojas")
	f.rosa = sqlitetest.SeedEmployee(t, db, companyID, "Rosa", "Flores")
	sqlitetest.SeedHoliday(t, db, "2025-05-01", "Día del Trabajo")

	f.svc = NewReportService(
		sqlite.NewShiftRepository(db),
		sqlite.NewEmployeeRepository(db),
		sqlite.NewStoreRepository(db),
		holidayservice.NewRepositoryOracle(sqlite.NewHolidayRepository(db)),
	)
	return f
}

func (f reportFixture) seed(t *testing.T, employeeID, storeID, date, entry, exit string) {
	t.Helper()
	sqlitetest.SeedShift(t, f.db, employeeID, storeID, "", date, entry, exit, false)
}

// assertConsistentTotals checks every shift of an employee carries the same total.
func assertConsistentTotals(t *testing.T, rep report.ShiftsReport) {
	t.Helper()
	seen := make(map[string]float64)
	for _, s := range rep.Shifts {
		if prev, ok := seen[s.EmployeeID]; ok {
			assert.Equal(t, prev, s.TotalHours, "employee %s", s.EmployeeID)
		}
		seen[s.EmployeeID] = s.TotalHours
	}
	for _, total := range rep.Totals {
		assert.Equal(t, seen[total.EmployeeID], total.TotalHours)
	}
}

// ===== WEEK VIEW =====

func TestReportService_WeekView(t *testing.T) {
	f := newReportFixture(t)
	f.seed(t, f.ana, f.storeA, "2025-02-03", "09:00", "18:00") // Monday
	f.seed(t, f.ana, f.storeA, "2025-02-09", "09:00", "12:00") // Sunday
	f.seed(t, f.ana, f.storeA, "2025-02-10", "09:00", "12:00") // next week
	f.seed(t, f.luis, f.storeB, "2025-02-05", "13:00", "18:00")

	rep, err := f.svc.WeekView(context.Background(), report.WeekViewRequest{Date: "2025-02-05"})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-03", rep.StartDate)
	assert.Equal(t, "2025-02-09", rep.EndDate)
	require.Len(t, rep.Shifts, 3)
	assertConsistentTotals(t, rep)

	for _, s := range rep.Shifts {
		if s.EmployeeID == f.ana {
			assert.InDelta(t, 11.25, s.TotalHours, 1e-9)
		}
	}

	_, err = f.svc.WeekView(context.Background(), report.WeekViewRequest{Date: "not-a-date"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

// ===== STRICT WEEK =====

func TestReportService_StrictWeek(t *testing.T) {
	f := newReportFixture(t)
	f.seed(t, f.ana, f.storeA, "2025-02-01", "09:00", "12:00")
	f.seed(t, f.ana, f.storeA, "2025-02-02", "09:00", "12:00")
	f.seed(t, f.ana, f.storeA, "2025-02-03", "09:00", "12:00")

	rep, err := f.svc.StrictWeek(context.Background(), report.StrictWeekRequest{Week: 1, Month: 2, Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, 5, rep.WeekCount)
	assert.Equal(t, "2025-02-01", rep.StartDate)
	assert.Equal(t, "2025-02-02", rep.EndDate)
	require.Len(t, rep.Shifts, 2)
	assert.InDelta(t, 6.0, rep.Shifts[0].TotalHours, 1e-9)
	assertConsistentTotals(t, rep.ShiftsReport)
}

func TestReportService_StrictWeek_OutOfRange(t *testing.T) {
	f := newReportFixture(t)

	for _, week := range []int{0, 6} {
		_, err := f.svc.StrictWeek(context.Background(), report.StrictWeekRequest{Week: week, Month: 2, Year: 2025})
		require.Error(t, err)
		assert.ErrorIs(t, err, report.ErrWeekOutOfRange)

		var rangeErr *worktime.WeekRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, 5, rangeErr.Count)
	}
}

// ===== MONTH PARTITION =====

func TestReportService_MonthWeeks(t *testing.T) {
	f := newReportFixture(t)
	f.seed(t, f.ana, f.storeA, "2025-02-01", "09:00", "12:00")
	f.seed(t, f.ana, f.storeA, "2025-02-04", "09:00", "18:00")
	f.seed(t, f.luis, f.storeA, "2025-02-05", "09:00", "12:00")

	plain, err := f.svc.MonthWeeks(context.Background(), report.MonthWeeksRequest{Month: 2, Year: 2025})
	require.NoError(t, err)
	require.Len(t, plain.Weeks, 5)
	assert.Nil(t, plain.Weeks[0].Totals)

	rep, err := f.svc.MonthWeeks(context.Background(), report.MonthWeeksRequest{Month: 2, Year: 2025, WithTotals: true})
	require.NoError(t, err)
	require.Len(t, rep.Weeks, 5)

	require.Len(t, rep.Weeks[0].Totals, 1)
	assert.InDelta(t, 3.0, rep.Weeks[0].Totals[0].TotalHours, 1e-9)
	require.Len(t, rep.Weeks[1].Totals, 2)
	assert.Equal(t, f.ana, rep.Weeks[1].Totals[0].EmployeeID)
	assert.InDelta(t, 8.25, rep.Weeks[1].Totals[0].TotalHours, 1e-9)
	assert.Empty(t, rep.Weeks[4].Totals)
}

// ===== STORE RANGE =====

func TestReportService_StoreRange(t *testing.T) {
	f := newReportFixture(t)
	f.seed(t, f.ana, f.storeA, "2025-03-20", "09:00", "12:00")
	f.seed(t, f.ana, f.storeA, "2025-03-02", "09:00", "18:00")
	f.seed(t, f.ana, f.storeB, "2025-03-03", "09:00", "12:00")
	f.seed(t, f.luis, f.storeA, "2025-03-10", "13:00", "18:00")

	rep, err := f.svc.StoreRange(context.Background(), report.StoreRangeRequest{StoreID: f.storeA, StartDate: "2025-03-01", EndDate: "2025-03-31"})
	require.NoError(t, err)
	require.Len(t, rep.Shifts, 3)
	assert.Equal(t, "2025-03-02", rep.Shifts[0].Date)
	assert.Equal(t, "2025-03-10", rep.Shifts[1].Date)
	assert.Equal(t, "2025-03-20", rep.Shifts[2].Date)
	assert.InDelta(t, 11.25, rep.Shifts[0].TotalHours, 1e-9)
	assertConsistentTotals(t, rep)

	_, err = f.svc.StoreRange(context.Background(), report.StoreRangeRequest{StoreID: "0190a5d2-0000-7000-8000-000000000000", StartDate: "2025-03-01", EndDate: "2025-03-31"})
	assert.ErrorIs(t, err, store.ErrStoreNotFound)

	_, err = f.svc.StoreRange(context.Background(), report.StoreRangeRequest{StoreID: f.storeA, StartDate: "2025-03-31", EndDate: "2025-03-01"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

// ===== WORKED HOURS / HOLIDAYS =====

func TestReportService_WorkedHours(t *testing.T) {
	f := newReportFixture(t)
	f.seed(t, f.ana, f.storeA, "2025-03-02", "09:00", "18:00")
	f.seed(t, f.luis, f.storeA, "2025-03-03", "09:00", "12:00")
	f.seed(t, f.rosa, f.storeA, "2025-03-04", "09:00", "12:00")

	ctx := context.Background()
	rep, err := f.svc.WorkedHours(ctx, report.EmployeeRangeRequest{EmployeeIDs: []string{f.ana, f.luis}, StartDate: "2025-03-01", EndDate: "2025-03-31"})
	require.NoError(t, err)
	require.Len(t, rep.Shifts, 2)
	require.Len(t, rep.Totals, 2)
	assertConsistentTotals(t, rep)

	empty, err := f.svc.WorkedHours(ctx, report.EmployeeRangeRequest{StartDate: "2025-03-01", EndDate: "2025-03-31"})
	require.NoError(t, err)
	assert.Empty(t, empty.Shifts)
	assert.Empty(t, empty.Totals)
	assert.NotNil(t, empty.Shifts)

	_, err = f.svc.WorkedHours(ctx, report.EmployeeRangeRequest{EmployeeIDs: []string{"nope"}, StartDate: "2025-03-01", EndDate: "2025-03-31"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestReportService_HolidayShifts(t *testing.T) {
	f := newReportFixture(t)
	f.seed(t, f.ana, f.storeA, "2025-05-01", "08:00", "11:00")
	f.seed(t, f.ana, f.storeB, "2025-05-01", "14:00", "17:00")
	f.seed(t, f.ana, f.storeA, "2025-05-02", "09:00", "18:00")
	f.seed(t, f.luis, f.storeA, "2025-05-02", "09:00", "18:00")

	rep, err := f.svc.HolidayShifts(context.Background(), report.EmployeeRangeRequest{EmployeeIDs: []string{f.ana, f.luis}, StartDate: "2025-05-01", EndDate: "2025-05-31"})
	require.NoError(t, err)
	require.Len(t, rep.Shifts, 2)
	for _, s := range rep.Shifts {
		assert.True(t, s.Holiday)
		assert.InDelta(t, 6.0, s.TotalHours, 1e-9)
	}
	require.Len(t, rep.Totals, 1)
	assert.Equal(t, f.ana, rep.Totals[0].EmployeeID)
}

// ===== MONTHLY SUMMARY =====

func TestReportService_MonthlySummary(t *testing.T) {
	f := newReportFixture(t)
	f.seed(t, f.ana, f.storeA, "2025-05-01", "08:00", "11:00")
	f.seed(t, f.ana, f.storeB, "2025-05-01", "14:00", "17:00")
	f.seed(t, f.ana, f.storeA, "2025-05-02", "09:00", "18:00")
	f.seed(t, f.luis, f.storeA, "2025-04-30", "09:00", "18:00")

	rep, err := f.svc.MonthlySummary(context.Background(), report.MonthlySummaryRequest{EmployeeIDs: []string{f.luis, f.ana}, Month: 5, Year: 2025})
	require.NoError(t, err)
	require.Len(t, rep.Employees, 2)

	luis := rep.Employees[0]
	assert.Equal(t, f.luis, luis.EmployeeID)
	assert.Equal(t, "Luis Rojas", luis.EmployeeName)
	assert.Zero(t, luis.TotalHours)
	assert.Zero(t, luis.HolidayDaysWorked)
	assert.Zero(t, luis.HolidayHours)
	assert.NotNil(t, luis.Shifts)
	assert.Empty(t, luis.Shifts)

	ana := rep.Employees[1]
	assert.InDelta(t, 14.25, ana.TotalHours, 1e-9)
	assert.Equal(t, 1, ana.HolidayDaysWorked)
	assert.InDelta(t, 6.0, ana.HolidayHours, 1e-9)
	assert.Len(t, ana.Shifts, 3)
}

func TestReportService_MonthlySummary_AllEmployees(t *testing.T) {
	f := newReportFixture(t)
	f.seed(t, f.rosa, f.storeA, "2025-05-05", "09:00", "12:00")

	rep, err := f.svc.MonthlySummary(context.Background(), report.MonthlySummaryRequest{Month: 5, Year: 2025})
	require.NoError(t, err)
	require.Len(t, rep.Employees, 3)
	assert.Equal(t, f.ana, rep.Employees[0].EmployeeID)
	assert.Equal(t, f.luis, rep.Employees[1].EmployeeID)
	assert.Equal(t, f.rosa, rep.Employees[2].EmployeeID)
	assert.InDelta(t, 3.0, rep.Employees[2].TotalHours, 1e-9)
	assert.Equal(t, "2025-05-31", rep.EndDate)
}

func TestReportService_MonthlySummary_UnknownEmployee(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.MonthlySummary(context.Background(), report.MonthlySummaryRequest{EmployeeIDs: []string{f.ana, "0190a5d2-0000-7000-8000-000000000000"}, Month: 5, Year: 2025})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestReportService_MonthlySummary_RepeatedEmployee(t *testing.T) {
	f := newReportFixture(t)
	f.seed(t, f.ana, f.storeA, "2025-05-02", "09:00", "18:00")

	rep, err := f.svc.MonthlySummary(context.Background(), report.MonthlySummaryRequest{EmployeeIDs: []string{f.ana, f.luis, f.ana}, Month: 5, Year: 2025})
	require.NoError(t, err)
	require.Len(t, rep.Employees, 2)
	assert.Equal(t, f.ana, rep.Employees[0].EmployeeID)
	assert.InDelta(t, 8.25, rep.Employees[0].TotalHours, 1e-9)
	assert.Len(t, rep.Employees[0].Shifts, 1)
	assert.Equal(t, f.luis, rep.Employees[1].EmployeeID)
}
