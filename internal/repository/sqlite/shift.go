package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sportcenter/shift-manager/internal/domain/employee"
	"github.com/sportcenter/shift-manager/internal/domain/shift"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type shiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftSelect = `
	SELECT s.id, s.employee_id, s.store_id, COALESCE(s.company_id, ''), s.date,
		s.entry_time, s.exit_time, s.holiday, s.created_at, s.updated_at,
		e.first_name, e.last_name, e.national_id, COALESCE(c.name, ''), st.name
	FROM shifts s
	JOIN employees e ON e.id = s.employee_id
	JOIN stores st ON st.id = s.store_id
	LEFT JOIN companies c ON c.id = s.company_id
`

const shiftOrder = ` ORDER BY s.date, s.entry_time, s.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (shift.Shift, error) {
	var (
		s                    shift.Shift
		date, entry, exit    string
		createdAt, updatedAt string
		firstName, lastName  string
	)
	err := row.Scan(&s.ID, &s.EmployeeID, &s.StoreID, &s.CompanyID, &date,
		&entry, &exit, &s.Holiday, &createdAt, &updatedAt,
		&firstName, &lastName, &s.EmployeeNationalID, &s.CompanyName, &s.StoreName)
	if err != nil {
		return shift.Shift{}, err
	}
	if s.Date, err = worktime.ParseDate(date); err != nil {
		return shift.Shift{}, fmt.Errorf("shift %s date: %w", s.ID, err)
	}
	if s.EntryTime, err = worktime.ParseClock(entry); err != nil {
		return shift.Shift{}, fmt.Errorf("shift %s entry_time: %w", s.ID, err)
	}
	if s.ExitTime, err = worktime.ParseClock(exit); err != nil {
		return shift.Shift{}, fmt.Errorf("shift %s exit_time: %w", s.ID, err)
	}
	s.CreatedAt = parseTimestamp(createdAt)
	s.UpdatedAt = parseTimestamp(updatedAt)
	s.EmployeeName = employee.Employee{FirstName: firstName, LastName: lastName}.FullName()
	return s, nil
}

func (r *shiftRepository) list(ctx context.Context, where string, args ...any) ([]shift.Shift, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, shiftSelect+where+shiftOrder, args...)
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

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *shiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	if s.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return shift.Shift{}, fmt.Errorf("failed to generate shift id: %w", err)
		}
		s.ID = id.String()
	}
	ts := now()

	_, err := querier(ctx, r.db).ExecContext(ctx, `
		INSERT INTO shifts (id, employee_id, store_id, company_id, date, entry_time, exit_time, holiday, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.EmployeeID, s.StoreID, nullable(s.CompanyID), worktime.FormatDate(s.Date),
		s.EntryTime.String(), s.ExitTime.String(), s.Holiday, ts, ts)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	s.CreatedAt = parseTimestamp(ts)
	s.UpdatedAt = s.CreatedAt
	return s, nil
}

func (r *shiftRepository) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := querier(ctx, r.db)
	ts := now()

	res, err := q.ExecContext(ctx, `
		UPDATE shifts
		SET employee_id = ?, store_id = ?, company_id = ?, date = ?,
			entry_time = ?, exit_time = ?, holiday = ?, updated_at = ?
		WHERE id = ?
	`, s.EmployeeID, s.StoreID, nullable(s.CompanyID), worktime.FormatDate(s.Date),
		s.EntryTime.String(), s.ExitTime.String(), s.Holiday, ts, s.ID)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to update shift with id %s: %w", s.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return shift.Shift{}, shift.ErrShiftNotFound
	}

	var createdAt string
	if err := q.QueryRowContext(ctx, `SELECT created_at FROM shifts WHERE id = ?`, s.ID).Scan(&createdAt); err != nil {
		return shift.Shift{}, fmt.Errorf("failed to reload shift with id %s: %w", s.ID, err)
	}
	s.CreatedAt = parseTimestamp(createdAt)
	s.UpdatedAt = parseTimestamp(ts)
	return s, nil
}

func (r *shiftRepository) Delete(ctx context.Context, id string) error {
	res, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift with id %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	s, err := scanShift(querier(ctx, r.db).QueryRowContext(ctx, shiftSelect+` WHERE s.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift with id %s: %w", id, err)
	}
	return s, nil
}

func (r *shiftRepository) ListByEmployee(ctx context.Context, employeeID string) ([]shift.Shift, error) {
	return r.list(ctx, ` WHERE s.employee_id = ?`, employeeID)
}

func (r *shiftRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]shift.Shift, error) {
	return r.list(ctx, ` WHERE s.date BETWEEN ? AND ?`, worktime.FormatDate(start), worktime.FormatDate(end))
}

func (r *shiftRepository) ListByEmployeeAndDateRange(ctx context.Context, employeeID string, start, end time.Time) ([]shift.Shift, error) {
	return r.list(ctx, ` WHERE s.employee_id = ? AND s.date BETWEEN ? AND ?`,
		employeeID, worktime.FormatDate(start), worktime.FormatDate(end))
}

func (r *shiftRepository) ListByEmployeesAndDateRange(ctx context.Context, employeeIDs []string, start, end time.Time) ([]shift.Shift, error) {
	if len(employeeIDs) == 0 {
		return []shift.Shift{}, nil
	}
	args := append(stringArgs(employeeIDs), worktime.FormatDate(start), worktime.FormatDate(end))
	return r.list(ctx, ` WHERE s.employee_id IN (`+inClause(len(employeeIDs))+`) AND s.date BETWEEN ? AND ?`, args...)
}

func (r *shiftRepository) ListByStoreAndDateRange(ctx context.Context, storeID string, start, end time.Time) ([]shift.Shift, error) {
	return r.list(ctx, ` WHERE s.store_id = ? AND s.date BETWEEN ? AND ?`,
		storeID, worktime.FormatDate(start), worktime.FormatDate(end))
}

func (r *shiftRepository) SetHolidayFlag(ctx context.Context, ids []string, holiday bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := append([]any{holiday, now()}, stringArgs(ids)...)
	args = append(args, holiday)
	res, err := querier(ctx, r.db).ExecContext(ctx,
		`UPDATE shifts SET holiday = ?, updated_at = ? WHERE id IN (`+inClause(len(ids))+`) AND holiday <> ?`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to set holiday flag: %w", err)
	}
	return res.RowsAffected()
}

func (r *shiftRepository) SetHolidayFlagByDate(ctx context.Context, date time.Time, holiday bool) (int64, error) {
	res, err := querier(ctx, r.db).ExecContext(ctx,
		`UPDATE shifts SET holiday = ?, updated_at = ? WHERE date = ? AND holiday <> ?`,
		holiday, now(), worktime.FormatDate(date), holiday)
	if err != nil {
		return 0, fmt.Errorf("failed to set holiday flag for %s: %w", worktime.FormatDate(date), err)
	}
	return res.RowsAffected()
}
