package store

import "context"

type StoreRepository interface {
	GetByID(ctx context.Context, id string) (Store, error)
}
