//go:build integration_pg

package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sportcenter/shift-manager/internal/domain/employee"
	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/domain/shift"
	"github.com/sportcenter/shift-manager/internal/domain/store"
	"github.com/sportcenter/shift-manager/internal/pkg/database"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
	"github.com/sportcenter/shift-manager/internal/repository/postgresql"
	"github.com/sportcenter/shift-manager/internal/repository/postgresql/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *database.DB

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "shift_manager",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		return 1
	}
	defer func() { _ = c.Terminate(context.Background()) }()

	host, err := c.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		return 1
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		return 1
	}
	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/shift_manager?sslmode=disable", host, port.Port())

	migrator, err := database.NewPostgresMigrator(migrations.FS, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init migrator: %v\n", err)
		return 1
	}
	if err := migrator.Up(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate: %v\n", err)
		return 1
	}
	_ = migrator.Close()

	testDB, err = database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 5, MinConns: 1})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		return 1
	}
	defer testDB.Close()

	return m.Run()
}

func truncate(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(context.Background(), `TRUNCATE TABLE shifts, holidays, employees, stores, companies CASCADE`)
	require.NoError(t, err)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func seedCompany(t *testing.T, name string) string {
	t.Helper()
	id := newID()
	_, err := testDB.Exec(context.Background(), `INSERT INTO companies (id, name, tax_id) VALUES ($1, $2, $3)`, id, name, id[len(id)-11:])
	require.NoError(t, err)
	return id
}

func seedStore(t *testing.T, name string) string {
	t.Helper()
	id := newID()
	_, err := testDB.Exec(context.Background(), `INSERT INTO stores (id, name) VALUES ($1, $2)`, id, name)
	require.NoError(t, err)
	return id
}

func seedEmployee(t *testing.T, companyID, first, last string) string {
	t.Helper()
	id := newID()
	var company any
	if companyID != "" {
		company = companyID
	}
	_, err := testDB.Exec(context.Background(),
		`INSERT INTO employees (id, company_id, first_name, last_name, national_id) VALUES ($1, $2, $3, $4, $5)`,
		id, company, first, last, id[len(id)-8:])
	require.NoError(t, err)
	return id
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := worktime.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newShift(t *testing.T, emp, st, company, day string, entry, exit worktime.Clock) shift.Shift {
	return shift.Shift{
		EmployeeID: emp,
		StoreID:    st,
		CompanyID:  company,
		Date:       date(t, day),
		EntryTime:  entry,
		ExitTime:   exit,
	}
}

// ===== SHIFTS =====

func TestShiftRepository_RoundTrip(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	companyID := seedCompany(t, "Acme")
	storeID := seedStore(t, "Downtown")
	empID := seedEmployee(t, companyID, "Ana", "Quispe")

	repo := postgresql.NewShiftRepository(testDB)
	created, err := repo.Create(ctx, newShift(t, empID, storeID, companyID, "2025-03-10", worktime.NewClock(9, 0), worktime.NewClock(18, 0)))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", worktime.FormatDate(got.Date))
	assert.Equal(t, "09:00", got.EntryTime.String())
	assert.Equal(t, "18:00", got.ExitTime.String())
	assert.Equal(t, "Ana Quispe", got.EmployeeName)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "Downtown", got.StoreName)

	got.ExitTime = worktime.NewClock(12, 0)
	_, err = repo.Update(ctx, got)
	require.NoError(t, err)
	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got.WorkedHours(), 1e-9)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

func TestShiftRepository_ForeignKeysMapToNotFound(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	storeID := seedStore(t, "Downtown")
	empID := seedEmployee(t, "", "Ana", "")
	repo := postgresql.NewShiftRepository(testDB)

	_, err := repo.Create(ctx, newShift(t, newID(), storeID, "", "2025-03-10", worktime.NewClock(9, 0), worktime.NewClock(12, 0)))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = repo.Create(ctx, newShift(t, empID, newID(), "", "2025-03-10", worktime.NewClock(9, 0), worktime.NewClock(12, 0)))
	assert.ErrorIs(t, err, store.ErrStoreNotFound)
}

func TestShiftRepository_ListsAndFlags(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	storeA := seedStore(t, "A")
	storeB := seedStore(t, "B")
	ana := seedEmployee(t, "", "Ana", "")
	luis := seedEmployee(t, "", "Luis", "")
	repo := postgresql.NewShiftRepository(testDB)

	for _, s := range []shift.Shift{
		newShift(t, ana, storeA, "", "2025-05-02", worktime.NewClock(9, 0), worktime.NewClock(12, 0)),
		newShift(t, ana, storeA, "", "2025-05-01", worktime.NewClock(9, 0), worktime.NewClock(12, 0)),
		newShift(t, luis, storeB, "", "2025-05-01", worktime.NewClock(13, 0), worktime.NewClock(18, 0)),
		newShift(t, luis, storeA, "", "2025-06-01", worktime.NewClock(13, 0), worktime.NewClock(18, 0)),
	} {
		_, err := repo.Create(ctx, s)
		require.NoError(t, err)
	}

	may := []time.Time{date(t, "2025-05-01"), date(t, "2025-05-31")}

	byStore, err := repo.ListByStoreAndDateRange(ctx, storeA, may[0], may[1])
	require.NoError(t, err)
	require.Len(t, byStore, 2)
	assert.Equal(t, "2025-05-01", worktime.FormatDate(byStore[0].Date))

	byEmployees, err := repo.ListByEmployeesAndDateRange(ctx, []string{ana, luis}, may[0], may[1])
	require.NoError(t, err)
	assert.Len(t, byEmployees, 3)

	all, err := repo.ListByDateRange(ctx, may[0], may[1])
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := repo.SetHolidayFlagByDate(ctx, date(t, "2025-05-01"), true)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	ids := []string{all[0].ID, all[1].ID}
	n, err = repo.SetHolidayFlag(ctx, ids, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

// ===== HOLIDAYS =====

func TestHolidayRepository(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	repo := postgresql.NewHolidayRepository(testDB)

	created, err := repo.Create(ctx, holiday.Holiday{Date: date(t, "2025-05-01"), Description: "Día del Trabajo"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, holiday.Holiday{Date: date(t, "2025-05-01"), Description: "again"})
	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)

	exists, err := repo.ExistsByDate(ctx, date(t, "2025-05-01"))
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Upsert(ctx, holiday.Holiday{Date: date(t, "2025-05-01"), Description: "Trabajo"}))
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trabajo", got.Description)

	between, err := repo.ListBetween(ctx, date(t, "2025-04-01"), date(t, "2025-04-30"))
	require.NoError(t, err)
	assert.Empty(t, between)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), holiday.ErrHolidayNotFound)
}

// ===== TRANSACTIONS =====

func TestTransactor_RollsBackOnError(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	repo := postgresql.NewHolidayRepository(testDB)
	tx := postgresql.NewTransactor(testDB)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, holiday.Holiday{Date: date(t, "2025-12-25"), Description: "Navidad"}); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
