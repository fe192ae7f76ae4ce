package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sportcenter/shift-manager/internal/domain/store"
	"github.com/sportcenter/shift-manager/internal/pkg/database"
)

type storeRepositoryImpl struct {
	db *database.DB
}

func NewStoreRepository(db *database.DB) store.StoreRepository {
	return &storeRepositoryImpl{db: db}
}

// GetByID implements store.StoreRepository.
func (r *storeRepositoryImpl) GetByID(ctx context.Context, id string) (store.Store, error) {
	q := GetQuerier(ctx, r.db)

	var found store.Store
	err := q.QueryRow(ctx, `SELECT id, name, address FROM stores WHERE id = $1`, id).
		Scan(&found.ID, &found.Name, &found.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Store{}, store.ErrStoreNotFound
		}
		return store.Store{}, fmt.Errorf("failed to get store with id %s: %w", id, err)
	}
	return found, nil
}
