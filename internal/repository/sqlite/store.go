package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sportcenter/shift-manager/internal/domain/company"
	"github.com/sportcenter/shift-manager/internal/domain/store"
)

type storeRepository struct {
	db *sql.DB
}

func NewStoreRepository(db *sql.DB) store.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (store.Store, error) {
	var found store.Store
	err := querier(ctx, r.db).QueryRowContext(ctx, `SELECT id, name, address FROM stores WHERE id = ?`, id).
		Scan(&found.ID, &found.Name, &found.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Store{}, store.ErrStoreNotFound
		}
		return store.Store{}, fmt.Errorf("failed to get store with id %s: %w", id, err)
	}
	return found, nil
}

type companyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	var found company.Company
	err := querier(ctx, r.db).QueryRowContext(ctx, `SELECT id, name, tax_id, enabled FROM companies WHERE id = ?`, id).
		Scan(&found.ID, &found.Name, &found.TaxID, &found.Enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %s: %w", id, err)
	}
	return found, nil
}
