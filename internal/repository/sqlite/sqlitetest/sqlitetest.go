// Package sqlitetest opens migrated in-memory databases and seeds the
// collaborator tables for tests.
package sqlitetest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/sportcenter/shift-manager/internal/pkg/database"
	"github.com/sportcenter/shift-manager/internal/repository/sqlite/migrations"
	"github.com/stretchr/testify/require"
)

// Open returns a fresh migrated in-memory database closed at test cleanup.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m, err := database.NewSQLiteMigrator(migrations.FS, db)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	return db
}

func newID(t *testing.T) string {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func SeedCompany(t *testing.T, db *sql.DB, name string) string {
	t.Helper()
	id := newID(t)
	_, err := db.Exec(`INSERT INTO companies (id, name, tax_id) VALUES (?, ?, ?)`, id, name, id[len(id)-11:])
	require.NoError(t, err)
	return id
}

func SeedStore(t *testing.T, db *sql.DB, name string) string {
	t.Helper()
	id := newID(t)
	_, err := db.Exec(`INSERT INTO stores (id, name) VALUES (?, ?)`, id, name)
	require.NoError(t, err)
	return id
}

// SeedEmployee inserts an employee; companyID may be empty.
func SeedEmployee(t *testing.T, db *sql.DB, companyID, firstName, lastName string) string {
	t.Helper()
	id := newID(t)
	var company any
	if companyID != "" {
		company = companyID
	}
	_, err := db.Exec(`INSERT INTO employees (id, company_id, first_name, last_name, national_id) VALUES (?, ?, ?, ?, ?)`,
		id, company, firstName, lastName, id[len(id)-8:])
	require.NoError(t, err)
	return id
}

func SeedHoliday(t *testing.T, db *sql.DB, date, description string) string {
	t.Helper()
	id := newID(t)
	_, err := db.Exec(`INSERT INTO holidays (id, date, description, created_at) VALUES (?, ?, ?, ?)`,
		id, date, description, "2025-01-01T00:00:00Z")
	require.NoError(t, err)
	return id
}

// SeedShift inserts a shift row directly, bypassing the service rules.
func SeedShift(t *testing.T, db *sql.DB, employeeID, storeID, companyID, date, entry, exit string, holiday bool) string {
	t.Helper()
	id := newID(t)
	var company any
	if companyID != "" {
		company = companyID
	}
	_, err := db.Exec(`
		INSERT INTO shifts (id, employee_id, store_id, company_id, date, entry_time, exit_time, holiday, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, employeeID, storeID, company, date, entry, exit, holiday, "2025-01-01T00:00:00Z", "2025-01-01T00:00:00Z")
	require.NoError(t, err)
	return id
}
