package queries

import (
	"context"

	"storebot/internal/pkg/errs"

	"github.com/google/uuid"
)

type ItemView struct {
	ID               uuid.UUID
	Kind             string
	Name             string
	PriceCents       int64
	PassDurationDays *int32
}

type CatalogReadStore interface {
	List(ctx context.Context) ([]*ItemView, error)
}

type CatalogQueries interface {
	ListItems(ctx context.Context) ([]*ItemView, error)
}

type catalogQueriesImpl struct {
	store CatalogReadStore
}

func NewCatalogQueries(store CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{store: store}
}

func (q *catalogQueriesImpl) ListItems(ctx context.Context) ([]*ItemView, error) {
	items, err := q.store.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return items, nil
}
