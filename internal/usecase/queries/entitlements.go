package queries

import (
	"context"
	"time"

	"storebot/internal/pkg/clock"
	"storebot/internal/pkg/errs"

	"github.com/google/uuid"
)

type EntitlementView struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	BuyerID   string
	ItemID    uuid.UUID
	StartsAt  time.Time
	ExpiresAt time.Time
	Active    bool
}

type EntitlementReadStore interface {
	// ListByBuyer returns entitlements newest-first; activeAfter limits the
	// result to rows expiring after the given instant (backed by the
	// buyer/expiry index).
	ListByBuyer(ctx context.Context, buyerID string, activeAfter *time.Time) ([]*EntitlementView, error)
}

type EntitlementQueries interface {
	ListByBuyer(ctx context.Context, buyerID string, activeOnly bool) ([]*EntitlementView, error)
}

type entitlementQueriesImpl struct {
	store EntitlementReadStore
	clock clock.Clock
}

func NewEntitlementQueries(store EntitlementReadStore, clock clock.Clock) EntitlementQueries {
	return &entitlementQueriesImpl{store: store, clock: clock}
}

func (q *entitlementQueriesImpl) ListByBuyer(ctx context.Context, buyerID string, activeOnly bool) ([]*EntitlementView, error) {
	now := q.clock.Now()

	var activeAfter *time.Time
	if activeOnly {
		activeAfter = &now
	}

	views, err := q.store.ListByBuyer(ctx, buyerID, activeAfter)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	for _, v := range views {
		v.Active = now.Before(v.ExpiresAt)
	}
	return views, nil
}
