package repository

import (
	"context"
	"errors"
	"time"

	"storebot/internal/domain/order"
	"storebot/internal/infra"
	"storebot/internal/pkg/pgconv"
	"storebot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const pgErrCodeUniqueViolation = "23505"

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ shared.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, buyer_id, buyer_contact, item_id, item_kind, amount_cents, status, charge_id, payment_url, created_at, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID(), o.BuyerID(), o.BuyerContact(), o.ItemID(), o.ItemKind().String(), o.Amount().Cents(),
		o.Status().String(), pgconv.StringPtrToPgtype(o.ChargeID()), pgconv.StringPtrToPgtype(o.PaymentURL()),
		pgconv.TimeToPgtype(o.CreatedAt()), pgconv.TimePtrToPgtype(o.ApprovedAt()),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr("order already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

// BindCharge assigns the gateway charge id at most once. The WHERE clause is
// the set-once guard; zero affected rows means a charge was already bound.
func (r *OrderRepository) BindCharge(ctx context.Context, id uuid.UUID, chargeID, paymentURL string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET charge_id = $2, payment_url = $3
		WHERE id = $1 AND charge_id IS NULL`,
		id, chargeID, paymentURL,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to bind charge", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkApproved is the conditional transition at the heart of the engine: the
// status predicate makes check-then-act atomic, so of N concurrent callers
// exactly one sees an affected row.
func (r *OrderRepository) MarkApproved(ctx context.Context, id uuid.UUID, approvedAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $2, approved_at = $3
		WHERE id = $1 AND status = $4`,
		id, order.StatusApproved.String(), pgconv.TimeToPgtype(approvedAt), order.StatusPending.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark order approved", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OrderRepository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.markTerminal(ctx, id, order.StatusExpired)
}

func (r *OrderRepository) MarkFailed(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.markTerminal(ctx, id, order.StatusFailed)
}

func (r *OrderRepository) markTerminal(ctx context.Context, id uuid.UUID, to order.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $2
		WHERE id = $1 AND status = $3`,
		id, to.String(), order.StatusPending.String(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark order "+to.String(), err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *OrderRepository) ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $1
		WHERE status = $2 AND created_at < $3`,
		order.StatusExpired.String(), order.StatusPending.String(), pgconv.TimeToPgtype(cutoff),
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire stale orders", err)
	}
	return tag.RowsAffected(), nil
}

const orderColumns = `id, buyer_id, buyer_contact, item_id, item_kind, amount_cents, status, charge_id, payment_url, created_at, approved_at`

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrderSnapshot(row, "order not found by id")
}

func (r *OrderRepository) FindByChargeID(ctx context.Context, chargeID string) (*shared.OrderSnapshot, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE charge_id = $1`, chargeID)
	return scanOrderSnapshot(row, "order not found by charge id")
}

func scanOrderSnapshot(row pgx.Row, notFoundMsg string) (*shared.OrderSnapshot, error) {
	var (
		snap       shared.OrderSnapshot
		kind       string
		status     string
		chargeID   pgtype.Text
		paymentURL pgtype.Text
		createdAt  pgtype.Timestamptz
		approvedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&snap.ID, &snap.BuyerID, &snap.BuyerContact, &snap.ItemID, &kind, &snap.AmountCents,
		&status, &chargeID, &paymentURL, &createdAt, &approvedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(notFoundMsg, err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan order", err)
	}

	itemKind, ok := order.ParseItemKind(kind)
	if !ok {
		return nil, infra.WrapRepoErr("unknown item kind: "+kind, nil)
	}
	orderStatus, ok := order.ParseStatus(status)
	if !ok {
		return nil, infra.WrapRepoErr("unknown order status: "+status, nil)
	}

	snap.ItemKind = itemKind
	snap.Status = orderStatus
	snap.ChargeID = pgconv.StringPtrFromPgtype(chargeID)
	snap.PaymentURL = pgconv.StringPtrFromPgtype(paymentURL)
	snap.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	snap.ApprovedAt = pgconv.TimePtrFromPgtype(approvedAt)
	return &snap, nil
}
