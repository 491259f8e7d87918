package shared

import (
	"context"
	"time"

	"storebot/internal/domain/catalog"
	"storebot/internal/domain/entitlement"
	"storebot/internal/domain/order"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: Direct access to command reads for resolution outside transactions.
	// The engine must never hold a transaction open across a gateway call.
	Reads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Entitlements() EntitlementRepository
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	// BindCharge assigns the gateway charge id exactly once. Returns false if a
	// charge was already bound.
	BindCharge(ctx context.Context, id uuid.UUID, chargeID, paymentURL string) (bool, error)
	// MarkApproved is the state-machine guard: it only succeeds while the row
	// is still pending and reports whether this caller won the transition.
	MarkApproved(ctx context.Context, id uuid.UUID, approvedAt time.Time) (bool, error)
	MarkExpired(ctx context.Context, id uuid.UUID) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID) (bool, error)
	// ExpireOlderThan reclaims every pending order created before the cutoff
	// and returns how many rows moved.
	ExpireOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type EntitlementRepository interface {
	Create(ctx context.Context, e *entitlement.Entitlement) error
}

type CommandReads interface {
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	OrderByChargeID(ctx context.Context, chargeID string) (*OrderSnapshot, error)
	ItemByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
}

// Write-side snapshots prevent dependency on read-side query types
type OrderSnapshot struct {
	ID           uuid.UUID
	BuyerID      string
	BuyerContact string
	ItemID       uuid.UUID
	ItemKind     order.ItemKind
	AmountCents  int64
	Status       order.Status
	ChargeID     *string
	PaymentURL   *string
	CreatedAt    time.Time
	ApprovedAt   *time.Time
}

type ItemSnapshot struct {
	ID               uuid.UUID
	Kind             catalog.Kind
	Name             string
	PriceCents       int64
	DeliveryURL      *string
	PassDurationDays *int32
}

// PassDuration mirrors catalog.Item.PassDuration for snapshot consumers.
func (s *ItemSnapshot) PassDuration() time.Duration {
	if s.PassDurationDays == nil {
		return 0
	}
	return time.Duration(*s.PassDurationDays) * 24 * time.Hour
}
