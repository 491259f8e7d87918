package repository

import (
	"context"
	"errors"

	"storebot/internal/domain/entitlement"
	"storebot/internal/infra"
	"storebot/internal/pkg/pgconv"
	"storebot/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgconn"
)

type EntitlementRepository struct {
	db DBTX
}

func NewEntitlementRepository(db DBTX) *EntitlementRepository {
	return &EntitlementRepository{db: db}
}

var _ shared.EntitlementRepository = (*EntitlementRepository)(nil)

func (r *EntitlementRepository) Create(ctx context.Context, e *entitlement.Entitlement) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO entitlements (id, order_id, buyer_id, item_id, starts_at, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID(), e.OrderID(), e.BuyerID(), e.ItemID(),
		pgconv.TimeToPgtype(e.StartsAt()), pgconv.TimeToPgtype(e.ExpiresAt()), pgconv.TimeToPgtype(e.CreatedAt()),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			// One entitlement per order; a duplicate insert means a replayed
			// approval that already issued the grant.
			return infra.WrapRepoErr("entitlement already exists for order", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create entitlement", err)
	}
	return nil
}
