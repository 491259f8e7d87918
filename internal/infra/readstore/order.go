package readstore

import (
	"context"

	"storebot/internal/infra"
	"storebot/internal/pkg/pgconv"
	"storebot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadStore struct {
	db DBTX
}

func NewOrderReadStore(db DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

var _ queries.OrderReadStore = (*OrderReadStore)(nil)

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row := s.db.QueryRow(ctx, `
		SELECT o.id, o.buyer_id, o.item_id, o.item_kind, i.name, o.amount_cents,
		       o.status, o.charge_id, o.payment_url, o.created_at, o.approved_at
		FROM orders o
		JOIN items i ON i.id = o.item_id
		WHERE o.id = $1`, id)

	var (
		view       queries.OrderView
		chargeID   pgtype.Text
		paymentURL pgtype.Text
		createdAt  pgtype.Timestamptz
		approvedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.BuyerID, &view.ItemID, &view.ItemKind, &view.ItemName, &view.AmountCents,
		&view.Status, &chargeID, &paymentURL, &createdAt, &approvedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by id", err)
	}

	view.ChargeID = pgconv.StringPtrFromPgtype(chargeID)
	view.PaymentURL = pgconv.StringPtrFromPgtype(paymentURL)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.ApprovedAt = pgconv.TimePtrFromPgtype(approvedAt)
	return &view, nil
}
