package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sportcenter/shift-manager/internal/domain/employee"
	"github.com/sportcenter/shift-manager/internal/domain/shift"
	"github.com/sportcenter/shift-manager/internal/domain/store"
	"github.com/sportcenter/shift-manager/internal/pkg/database"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftSelect = `
	SELECT s.id, s.employee_id, s.store_id, COALESCE(s.company_id::text, ''), s.date,
		to_char(s.entry_time, 'HH24:MI'), to_char(s.exit_time, 'HH24:MI'),
		s.holiday, s.created_at, s.updated_at,
		e.first_name, e.last_name, e.national_id, COALESCE(c.name, ''), st.name
	FROM shifts s
	JOIN employees e ON e.id = s.employee_id
	JOIN stores st ON st.id = s.store_id
	LEFT JOIN companies c ON c.id = s.company_id
`

const shiftOrder = ` ORDER BY s.date, s.entry_time, s.id`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var (
		s                   shift.Shift
		entry, exit         string
		firstName, lastName string
	)
	err := row.Scan(&s.ID, &s.EmployeeID, &s.StoreID, &s.CompanyID, &s.Date,
		&entry, &exit, &s.Holiday, &s.CreatedAt, &s.UpdatedAt,
		&firstName, &lastName, &s.EmployeeNationalID, &s.CompanyName, &s.StoreName)
	if err != nil {
		return shift.Shift{}, err
	}
	if s.EntryTime, err = worktime.ParseClock(entry); err != nil {
		return shift.Shift{}, fmt.Errorf("shift %s entry_time: %w", s.ID, err)
	}
	if s.ExitTime, err = worktime.ParseClock(exit); err != nil {
		return shift.Shift{}, fmt.Errorf("shift %s exit_time: %w", s.ID, err)
	}
	s.Date = worktime.DateOf(s.Date)
	s.EmployeeName = employee.Employee{FirstName: firstName, LastName: lastName}.FullName()
	return s, nil
}

func (r *shiftRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, shiftSelect+where+shiftOrder, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	shifts := make([]shift.Shift, 0)
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}

func pgClock(c worktime.Clock) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c.Minutes()) * int64(time.Minute/time.Microsecond), Valid: !c.IsZero()}
}

func nullableUUID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// mapShiftWriteError turns constraint violations raised by a concurrent
// delete of the referenced rows into domain errors.
func mapShiftWriteError(err error) error {
	code, constraint := pgErrorCode(err)
	if code != pgForeignKeyViolation {
		return err
	}
	switch constraint {
	case "shifts_employee_id_fkey":
		return employee.ErrEmployeeNotFound
	case "shifts_store_id_fkey":
		return store.ErrStoreNotFound
	}
	return err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return shift.Shift{}, fmt.Errorf("failed to generate shift id: %w", err)
		}
		s.ID = id.String()
	}

	query := `
		INSERT INTO shifts (id, employee_id, store_id, company_id, date, entry_time, exit_time, holiday)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, s.ID, s.EmployeeID, s.StoreID, nullableUUID(s.CompanyID), s.Date,
		pgClock(s.EntryTime), pgClock(s.ExitTime), s.Holiday).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", mapShiftWriteError(err))
	}
	return s, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET employee_id = $2, store_id = $3, company_id = $4, date = $5,
			entry_time = $6, exit_time = $7, holiday = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, s.ID, s.EmployeeID, s.StoreID, nullableUUID(s.CompanyID), s.Date,
		pgClock(s.EntryTime), pgClock(s.ExitTime), s.Holiday).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift with id %s: %w", s.ID, mapShiftWriteError(err))
	}
	return s, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanShift(q.QueryRow(ctx, shiftSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift with id %s: %w", id, err)
	}
	return s, nil
}

// ListByEmployee implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]shift.Shift, error) {
	return r.list(ctx, ` WHERE s.employee_id = $1`, employeeID)
}

// ListByDateRange implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByDateRange(ctx context.Context, start, end time.Time) ([]shift.Shift, error) {
	return r.list(ctx, ` WHERE s.date BETWEEN $1 AND $2`, start, end)
}

// ListByEmployeeAndDateRange implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByEmployeeAndDateRange(ctx context.Context, employeeID string, start, end time.Time) ([]shift.Shift, error) {
	return r.list(ctx, ` WHERE s.employee_id = $1 AND s.date BETWEEN $2 AND $3`, employeeID, start, end)
}

// ListByEmployeesAndDateRange implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByEmployeesAndDateRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]shift.Shift, error) {
	if len(employeeIDs) == 0 {
		return []shift.Shift{}, nil
	}
	return r.list(ctx, ` WHERE s.employee_id = ANY($1::text[]::uuid[]) AND s.date BETWEEN $2 AND $3`, employeeIDs, start, end)
}

// ListByStoreAndDateRange implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByStoreAndDateRange(ctx context.Context, storeID string, start, end time.Time) ([]shift.Shift, error) {
	return r.list(ctx, ` WHERE s.store_id = $1 AND s.date BETWEEN $2 AND $3`, storeID, start, end)
}

// SetHolidayFlag implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) SetHolidayFlag(ctx context.Context, ids []string, holiday bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE shifts SET holiday = $2, updated_at = NOW()
		WHERE id = ANY($1::text[]::uuid[]) AND holiday <> $2
	`, ids, holiday)
	if err != nil {
		return 0, fmt.Errorf("failed to set holiday flag: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SetHolidayFlagByDate implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) SetHolidayFlagByDate(ctx context.Context, date time.Time, holiday bool) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE shifts SET holiday = $2, updated_at = NOW()
		WHERE date = $1 AND holiday <> $2
	`, date, holiday)
	if err != nil {
		return 0, fmt.Errorf("failed to set holiday flag for %s: %w", worktime.FormatDate(date), err)
	}
	return tag.RowsAffected(), nil
}
