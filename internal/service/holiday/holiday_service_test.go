package holiday

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/fixtures"
	"github.com/sportcenter/shift-manager/internal/pkg/validator"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
	"github.com/sportcenter/shift-manager/internal/repository/sqlite"
	"github.com/sportcenter/shift-manager/internal/repository/sqlite/sqlitetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := worktime.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newDatabaseService(t *testing.T) (holiday.HolidayService, *sql.DB) {
	t.Helper()
	db := sqlitetest.Open(t)
	repo := sqlite.NewHolidayRepository(db)
	svc := NewHolidayService(NewRepositoryOracle(repo), repo, sqlite.NewShiftRepository(db), sqlite.NewTransactor(db), fixtures.DefaultHolidays())
	return svc, db
}

func shiftHoliday(t *testing.T, db *sql.DB, id string) bool {
	t.Helper()
	var flag bool
	require.NoError(t, db.QueryRow(`SELECT holiday FROM shifts WHERE id = ?`, id).Scan(&flag))
	return flag
}

// ===== ORACLES =====

func TestStaticOracle(t *testing.T) {
	ctx := context.Background()
	o := NewStaticOracle(fixtures.DefaultHolidays())

	ok, err := o.IsHoliday(ctx, mustDate(t, "2025-07-28"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = o.IsHoliday(ctx, mustDate(t, "2025-07-27"))
	require.NoError(t, err)
	assert.False(t, ok)

	july, err := o.Between(ctx, mustDate(t, "2025-07-01"), mustDate(t, "2025-07-31"))
	require.NoError(t, err)
	require.Len(t, july, 3)
	assert.Equal(t, "2025-07-23", worktime.FormatDate(july[0].Date))

	none, err := o.Between(ctx, mustDate(t, "2026-01-02"), mustDate(t, "2026-12-31"))
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := o.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 16)
}

func TestOracles_Agree(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDatabaseService(t)
	_, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)

	static := NewStaticOracle(fixtures.DefaultHolidays())
	for d := mustDate(t, "2025-01-01"); d.Year() == 2025; d = d.AddDate(0, 0, 1) {
		fromDB, err := svc.IsHoliday(ctx, d)
		require.NoError(t, err)
		fromTable, err := static.IsHoliday(ctx, d)
		require.NoError(t, err)
		assert.Equal(t, fromTable, fromDB, worktime.FormatDate(d))
	}
}

// ===== SERVICE =====

func TestHolidayService_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDatabaseService(t)

	n, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	n, err = svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := svc.List(ctx, holiday.ListHolidaysRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 16)

	ranged, err := svc.List(ctx, holiday.ListHolidaysRequest{StartDate: "2025-12-01", EndDate: "2025-12-31"})
	require.NoError(t, err)
	require.Len(t, ranged, 3)
	assert.Equal(t, "Navidad", ranged[2].Description)
}

func TestHolidayService_Check(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDatabaseService(t)
	_, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)

	resp, err := svc.Check(ctx, mustDate(t, "2025-12-25"))
	require.NoError(t, err)
	assert.True(t, resp.Holiday)
	assert.Equal(t, "Navidad", resp.Description)

	resp, err = svc.Check(ctx, mustDate(t, "2025-12-26"))
	require.NoError(t, err)
	assert.False(t, resp.Holiday)
	assert.Empty(t, resp.Description)
}

func TestHolidayService_CreateAndDeleteReflagShifts(t *testing.T) {
	ctx := context.Background()
	svc, db := newDatabaseService(t)
	storeID := sqlitetest.SeedStore(t, db, "Downtown")
	empID := sqlitetest.SeedEmployee(t, db, "", "Ana", "")
	shiftID := sqlitetest.SeedShift(t, db, empID, storeID, "", "2025-09-15", "09:00", "12:00", false)

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2025-09-15", Description: "Feriado regional"})
	require.NoError(t, err)
	assert.Equal(t, "2025-09-15", created.Date)
	assert.True(t, shiftHoliday(t, db, shiftID))

	_, err = svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2025-09-15", Description: "again"})
	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.False(t, shiftHoliday(t, db, shiftID))

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), holiday.ErrHolidayNotFound)
}

func TestHolidayService_CreateValidation(t *testing.T) {
	svc, _ := newDatabaseService(t)

	_, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{Date: "2025-02-30", Description: " "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
	assert.Contains(t, verrs.ToMap(), "description")
}

func TestHolidayService_CreateDescriptionCountsCharacters(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDatabaseService(t)

	accented := strings.Repeat("í", 100)
	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2025-09-15", Description: accented})
	require.NoError(t, err)
	assert.Equal(t, accented, created.Description)

	_, err = svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2025-09-16", Description: accented + "í"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "description")
}

func TestHolidayService_StaticSourceIsReadOnly(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	svc := NewHolidayService(NewStaticOracle(fixtures.DefaultHolidays()), nil, sqlite.NewShiftRepository(db), sqlite.NewTransactor(db), nil)

	_, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2025-09-15", Description: "x"})
	assert.ErrorIs(t, err, holiday.ErrHolidayReadOnly)
	assert.ErrorIs(t, svc.Delete(ctx, "0190a5d2-0000-7000-8000-000000000000"), holiday.ErrHolidayReadOnly)

	n, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := svc.List(ctx, holiday.ListHolidaysRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 16)
}
