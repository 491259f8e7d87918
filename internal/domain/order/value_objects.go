package order

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount     = errors.New("amount cannot be negative")
	ErrInvalidCorrelation = errors.New("invalid correlation id")
)

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

// CorrelationID is the external reference sent to the payment gateway when a
// charge is created and echoed back in its responses. It carries an explicit
// kind discriminant instead of the bare numeric prefixes the gateway would
// otherwise force on us.
type CorrelationID struct {
	Kind    ItemKind
	OrderID uuid.UUID
}

func NewCorrelationID(kind ItemKind, orderID uuid.UUID) CorrelationID {
	return CorrelationID{Kind: kind, OrderID: orderID}
}

func (c CorrelationID) String() string {
	switch c.Kind {
	case KindPass:
		return "pass:" + c.OrderID.String()
	default:
		return "sale:" + c.OrderID.String()
	}
}

func ParseCorrelationID(s string) (CorrelationID, error) {
	prefix, rest, found := strings.Cut(s, ":")
	if !found {
		return CorrelationID{}, ErrInvalidCorrelation
	}

	var kind ItemKind
	switch prefix {
	case "sale":
		kind = KindProduct
	case "pass":
		kind = KindPass
	default:
		return CorrelationID{}, ErrInvalidCorrelation
	}

	id, err := uuid.Parse(rest)
	if err != nil {
		return CorrelationID{}, ErrInvalidCorrelation
	}

	return CorrelationID{Kind: kind, OrderID: id}, nil
}
