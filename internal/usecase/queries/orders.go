package queries

import (
	"context"
	"time"

	"storebot/internal/infra"
	"storebot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrQueryFailed   = errs.New("query failed")
)

type OrderView struct {
	ID           uuid.UUID
	BuyerID      string
	ItemID       uuid.UUID
	ItemKind     string
	ItemName     string
	AmountCents  int64
	Status       string
	ChargeID     *string
	PaymentURL   *string
	CreatedAt    time.Time
	ApprovedAt   *time.Time
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}
