package commands

import (
	"context"
	"time"

	"storebot/internal/domain/order"

	"github.com/google/uuid"
)

// ChargeStatus is the gateway's payment state decoded once at the client
// boundary. The engine only ever branches on this type, never on raw
// provider JSON.
type ChargeStatus string

const (
	ChargeApproved    ChargeStatus = "approved"
	ChargePending     ChargeStatus = "pending"
	ChargeInProcess   ChargeStatus = "in_process"
	ChargeRejected    ChargeStatus = "rejected"
	ChargeCancelled   ChargeStatus = "cancelled"
	ChargeRefunded    ChargeStatus = "refunded"
	ChargeChargedBack ChargeStatus = "charged_back"
	ChargeUnknown     ChargeStatus = "unknown"
)

// Dead reports whether the charge can never be paid anymore. A rejected
// payment attempt is not dead: the buyer may retry against the same charge.
func (s ChargeStatus) Dead() bool {
	switch s {
	case ChargeCancelled, ChargeRefunded, ChargeChargedBack:
		return true
	default:
		return false
	}
}

type CreateChargeInput struct {
	Correlation  order.CorrelationID
	Description  string
	AmountCents  int64
	BuyerContact string
}

type ChargeHandle struct {
	ChargeID   string
	PaymentURL string
}

type ChargeStatusResult struct {
	Status              ChargeStatus
	ApprovedAmountCents *int64
	PayerEmail          *string
}

type GatewayClient interface {
	CreateCharge(ctx context.Context, in CreateChargeInput) (ChargeHandle, error)
	GetChargeStatus(ctx context.Context, chargeID string) (ChargeStatusResult, error)
}

type DeliveryState string

const (
	DeliveryDelivered DeliveryState = "delivered"
	DeliveryDeferred  DeliveryState = "deferred"
)

type DeliveryResult struct {
	State  DeliveryState
	Reason string
}

// Delivery carries everything the dispatcher needs to hand value to the
// buyer: the link for a product, or the entitlement window for a pass invite.
type Delivery struct {
	OrderID         uuid.UUID
	BuyerID         string
	BuyerContact    string
	ItemName        string
	Kind            order.ItemKind
	DeliveryURL     *string
	EntitlementID   *uuid.UUID
	AccessExpiresAt *time.Time
}

// FulfillmentDispatcher must be idempotent per order id: repeated calls for
// the same approved order never mint a second distinct invite.
type FulfillmentDispatcher interface {
	Deliver(ctx context.Context, d Delivery) (DeliveryResult, error)
}
