package readstore

import (
	"context"
	"time"

	"storebot/internal/infra"
	"storebot/internal/pkg/pgconv"
	"storebot/internal/usecase/queries"
)

type EntitlementReadStore struct {
	db DBTX
}

func NewEntitlementReadStore(db DBTX) *EntitlementReadStore {
	return &EntitlementReadStore{db: db}
}

var _ queries.EntitlementReadStore = (*EntitlementReadStore)(nil)

func (s *EntitlementReadStore) ListByBuyer(ctx context.Context, buyerID string, activeAfter *time.Time) ([]*queries.EntitlementView, error) {
	query := `
		SELECT id, order_id, buyer_id, item_id, starts_at, expires_at
		FROM entitlements
		WHERE buyer_id = $1`
	args := []any{buyerID}

	if activeAfter != nil {
		query += ` AND expires_at > $2`
		args = append(args, pgconv.TimeToPgtype(*activeAfter))
	}
	query += ` ORDER BY expires_at DESC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list entitlements", err)
	}
	defer rows.Close()

	var out []*queries.EntitlementView
	for rows.Next() {
		var view queries.EntitlementView
		if err := rows.Scan(&view.ID, &view.OrderID, &view.BuyerID, &view.ItemID, &view.StartsAt, &view.ExpiresAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan entitlement", err)
		}
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate entitlements", err)
	}
	return out, nil
}
