package company

import "context"

// CompanyRepository is read-only; companies are managed elsewhere.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
}
