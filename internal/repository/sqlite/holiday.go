package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/sportcenter/shift-manager/internal/domain/holiday"
	"github.com/sportcenter/shift-manager/internal/pkg/worktime"
)

type holidayRepository struct {
	db *sql.DB
}

func NewHolidayRepository(db *sql.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

const holidaySelect = `SELECT id, date, description, created_at FROM holidays`

func scanHoliday(row rowScanner) (holiday.Holiday, error) {
	var (
		h               holiday.Holiday
		date, createdAt string
	)
	if err := row.Scan(&h.ID, &date, &h.Description, &createdAt); err != nil {
		return holiday.Holiday{}, err
	}
	d, err := worktime.ParseDate(date)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("holiday %s: %w", h.ID, err)
	}
	h.Date = d
	h.CreatedAt = parseTimestamp(createdAt)
	return h, nil
}

func (r *holidayRepository) query(ctx context.Context, query string, args ...any) ([]holiday.Holiday, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]holiday.Holiday, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (r *holidayRepository) ExistsByDate(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM holidays WHERE date = ?)`, worktime.FormatDate(date)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}
	return exists, nil
}

func (r *holidayRepository) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	h, err := scanHoliday(querier(ctx, r.db).QueryRowContext(ctx, holidaySelect+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday with id %s: %w", id, err)
	}
	return h, nil
}

func (r *holidayRepository) ListBetween(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	return r.query(ctx, holidaySelect+` WHERE date BETWEEN ? AND ? ORDER BY date`,
		worktime.FormatDate(start), worktime.FormatDate(end))
}

func (r *holidayRepository) List(ctx context.Context) ([]holiday.Holiday, error) {
	return r.query(ctx, holidaySelect+` ORDER BY date`)
}

func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to generate holiday id: %w", err)
	}
	h.ID = id.String()
	ts := now()

	_, err = querier(ctx, r.db).ExecContext(ctx,
		`INSERT INTO holidays (id, date, description, created_at) VALUES (?, ?, ?, ?)`,
		h.ID, worktime.FormatDate(h.Date), h.Description, ts)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	h.CreatedAt = parseTimestamp(ts)
	return h, nil
}

func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	res, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday with id %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

func (r *holidayRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := querier(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM holidays`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count holidays: %w", err)
	}
	return n, nil
}

func (r *holidayRepository) Upsert(ctx context.Context, h holiday.Holiday) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate holiday id: %w", err)
	}
	_, err = querier(ctx, r.db).ExecContext(ctx, `
		INSERT INTO holidays (id, date, description, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET description = excluded.description
	`, id.String(), worktime.FormatDate(h.Date), h.Description, now())
	if err != nil {
		return fmt.Errorf("failed to upsert holiday: %w", err)
	}
	return nil
}
