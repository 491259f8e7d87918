package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotPending         = errors.New("order is not pending")
	ErrChargeAlreadyBound = errors.New("charge id already bound")
	ErrEmptyBuyer         = errors.New("buyer id must not be empty")
)

// Order is one attempted purchase of a single catalog item by one buyer.
// The amount is fixed at creation and the status only ever moves forward:
// pending -> approved | expired | failed.
type Order struct {
	id           uuid.UUID
	buyerID      string
	buyerContact string
	itemID       uuid.UUID
	itemKind     ItemKind
	amount       Money
	status       Status
	chargeID     *string
	paymentURL   *string
	createdAt    time.Time
	approvedAt   *time.Time
}

func NewOrder(buyerID, buyerContact string, itemID uuid.UUID, kind ItemKind, amount Money, now time.Time) (*Order, error) {
	if buyerID == "" {
		return nil, ErrEmptyBuyer
	}

	return &Order{
		id:           uuid.New(),
		buyerID:      buyerID,
		buyerContact: buyerContact,
		itemID:       itemID,
		itemKind:     kind,
		amount:       amount,
		status:       StatusPending,
		createdAt:    now,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	buyerID, buyerContact string,
	itemID uuid.UUID,
	kind ItemKind,
	amount Money,
	status Status,
	chargeID, paymentURL *string,
	createdAt time.Time,
	approvedAt *time.Time,
) *Order {
	return &Order{
		id:           id,
		buyerID:      buyerID,
		buyerContact: buyerContact,
		itemID:       itemID,
		itemKind:     kind,
		amount:       amount,
		status:       status,
		chargeID:     chargeID,
		paymentURL:   paymentURL,
		createdAt:    createdAt,
		approvedAt:   approvedAt,
	}
}

// BindCharge records the gateway-assigned charge id. It is set at most once;
// a second bind is an invariant violation, not a retryable condition.
func (o *Order) BindCharge(chargeID, paymentURL string) error {
	if o.chargeID != nil {
		return ErrChargeAlreadyBound
	}
	o.chargeID = &chargeID
	o.paymentURL = &paymentURL
	return nil
}

func (o *Order) Approve(now time.Time) error {
	if !o.status.CanTransition(StatusApproved) {
		return ErrNotPending
	}
	o.status = StatusApproved
	o.approvedAt = &now
	return nil
}

func (o *Order) Expire() error {
	if !o.status.CanTransition(StatusExpired) {
		return ErrNotPending
	}
	o.status = StatusExpired
	return nil
}

func (o *Order) Fail() error {
	if !o.status.CanTransition(StatusFailed) {
		return ErrNotPending
	}
	o.status = StatusFailed
	return nil
}

func (o *Order) AgeAt(now time.Time) time.Duration {
	return now.Sub(o.createdAt)
}

// OlderThan reports whether the order has outlived the expiry window and a
// late approval must be refused.
func (o *Order) OlderThan(window time.Duration, now time.Time) bool {
	return o.AgeAt(now) > window
}

func (o *Order) Correlation() CorrelationID {
	return NewCorrelationID(o.itemKind, o.id)
}

func (o *Order) ID() uuid.UUID         { return o.id }
func (o *Order) BuyerID() string       { return o.buyerID }
func (o *Order) BuyerContact() string  { return o.buyerContact }
func (o *Order) ItemID() uuid.UUID     { return o.itemID }
func (o *Order) ItemKind() ItemKind    { return o.itemKind }
func (o *Order) Amount() Money         { return o.amount }
func (o *Order) Status() Status        { return o.status }
func (o *Order) ChargeID() *string     { return o.chargeID }
func (o *Order) PaymentURL() *string   { return o.paymentURL }
func (o *Order) CreatedAt() time.Time  { return o.createdAt }
func (o *Order) ApprovedAt() *time.Time { return o.approvedAt }
