//go:build unit

package order_test

import (
	"testing"

	"storebot/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		kind   order.ItemKind
		prefix string
	}{
		{name: "product order", kind: order.KindProduct, prefix: "sale:"},
		{name: "pass order", kind: order.KindPass, prefix: "pass:"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			id := uuid.New()
			corr := order.NewCorrelationID(c.kind, id)

			encoded := corr.String()
			assert.Equal(t, c.prefix+id.String(), encoded)

			parsed, err := order.ParseCorrelationID(encoded)
			require.NoError(t, err)
			assert.Equal(t, c.kind, parsed.Kind)
			assert.Equal(t, id, parsed.OrderID)
		})
	}
}

func TestParseCorrelationIDRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"sale",
		"sale:",
		"sale:not-a-uuid",
		"venda_123",
		"unknown:" + uuid.NewString(),
	}

	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			_, err := order.ParseCorrelationID(raw)
			require.ErrorIs(t, err, order.ErrInvalidCorrelation)
		})
	}
}
