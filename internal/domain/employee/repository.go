package employee

import "context"

// EmployeeRepository exposes the reads the shift engine needs. Employee
// records are owned by the HR system.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDs returns the employees found; missing ids are simply absent.
	GetByIDs(ctx context.Context, ids []string) ([]Employee, error)
	// ListIDs returns every employee id ordered by name.
	ListIDs(ctx context.Context) ([]string, error)
}
