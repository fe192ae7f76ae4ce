package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sportcenter/shift-manager/internal/domain/employee"
)

type employeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeSelect = `
	SELECT id, COALESCE(company_id, ''), first_name, last_name, national_id, email, phone, enabled
	FROM employees
`

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(&e.ID, &e.CompanyID, &e.FirstName, &e.LastName, &e.NationalID, &e.Email, &e.Phone, &e.Enabled)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, err := scanEmployee(querier(ctx, r.db).QueryRowContext(ctx, employeeSelect+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return e, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return []employee.Employee{}, nil
	}
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		employeeSelect+` WHERE id IN (`+inClause(len(ids))+`) ORDER BY first_name, last_name, id`, stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0, len(ids))
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, `SELECT id FROM employees ORDER BY first_name, last_name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
