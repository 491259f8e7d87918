package entitlement

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidDuration = errors.New("pass duration must be positive")

// Entitlement is a time-boxed access grant derived from an approved pass
// order. It is created exactly once per order and never deleted; a renewal
// produces a new entitlement rather than mutating this one. Whether it is
// active is derived from the clock, never stored.
type Entitlement struct {
	id        uuid.UUID
	orderID   uuid.UUID
	buyerID   string
	itemID    uuid.UUID
	startsAt  time.Time
	expiresAt time.Time
	createdAt time.Time
}

func NewEntitlement(orderID uuid.UUID, buyerID string, itemID uuid.UUID, approvedAt time.Time, duration time.Duration) (*Entitlement, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	return &Entitlement{
		id:        uuid.New(),
		orderID:   orderID,
		buyerID:   buyerID,
		itemID:    itemID,
		startsAt:  approvedAt,
		expiresAt: approvedAt.Add(duration),
		createdAt: approvedAt,
	}, nil
}

func ReconstructEntitlement(id, orderID uuid.UUID, buyerID string, itemID uuid.UUID, startsAt, expiresAt, createdAt time.Time) *Entitlement {
	return &Entitlement{
		id:        id,
		orderID:   orderID,
		buyerID:   buyerID,
		itemID:    itemID,
		startsAt:  startsAt,
		expiresAt: expiresAt,
		createdAt: createdAt,
	}
}

func (e *Entitlement) IsActive(now time.Time) bool {
	return now.Before(e.expiresAt)
}

func (e *Entitlement) ID() uuid.UUID        { return e.id }
func (e *Entitlement) OrderID() uuid.UUID   { return e.orderID }
func (e *Entitlement) BuyerID() string      { return e.buyerID }
func (e *Entitlement) ItemID() uuid.UUID    { return e.itemID }
func (e *Entitlement) StartsAt() time.Time  { return e.startsAt }
func (e *Entitlement) ExpiresAt() time.Time { return e.expiresAt }
func (e *Entitlement) CreatedAt() time.Time { return e.createdAt }
