package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName          = errors.New("item name must not be empty")
	ErrNegativePrice      = errors.New("item price cannot be negative")
	ErrMissingDeliveryURL = errors.New("product item requires a delivery url")
	ErrInvalidDuration    = errors.New("pass item requires a positive duration")
)

type Kind string

const (
	KindProduct Kind = "product"
	KindPass    Kind = "pass"
)

// Item is one sellable catalog entry: either a digital product delivered by
// link, or an access pass valid for a fixed number of days.
type Item struct {
	id               uuid.UUID
	kind             Kind
	name             string
	priceCents       int64
	deliveryURL      *string
	passDurationDays *int32
}

func NewItem(id uuid.UUID, kind Kind, name string, priceCents int64, deliveryURL *string, passDurationDays *int32) (*Item, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	switch kind {
	case KindProduct:
		if deliveryURL == nil || *deliveryURL == "" {
			return nil, ErrMissingDeliveryURL
		}
	case KindPass:
		if passDurationDays == nil || *passDurationDays <= 0 {
			return nil, ErrInvalidDuration
		}
	}

	return &Item{
		id:               id,
		kind:             kind,
		name:             name,
		priceCents:       priceCents,
		deliveryURL:      deliveryURL,
		passDurationDays: passDurationDays,
	}, nil
}

// PassDuration converts the stored day count into the wall-clock validity of
// an entitlement issued against this item.
func (i *Item) PassDuration() time.Duration {
	if i.passDurationDays == nil {
		return 0
	}
	return time.Duration(*i.passDurationDays) * 24 * time.Hour
}

func (i *Item) ID() uuid.UUID            { return i.id }
func (i *Item) Kind() Kind               { return i.kind }
func (i *Item) Name() string             { return i.name }
func (i *Item) PriceCents() int64        { return i.priceCents }
func (i *Item) DeliveryURL() *string     { return i.deliveryURL }
func (i *Item) PassDurationDays() *int32 { return i.passDurationDays }
