//go:build unit

package order_test

import (
	"testing"
	"time"

	"storebot/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()
	amount, err := order.NewMoney(5000)
	require.NoError(t, err)

	o, err := order.NewOrder("buyer-1", "@buyer", uuid.New(), order.KindProduct, amount, createdAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	now := time.Now()

	t.Run("starts pending with no charge bound", func(t *testing.T) {
		o := newPendingOrder(t, now)

		assert.NotEqual(t, uuid.Nil, o.ID())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.ChargeID())
		assert.Nil(t, o.ApprovedAt())
		assert.Equal(t, int64(5000), o.Amount().Cents())
	})

	t.Run("rejects empty buyer", func(t *testing.T) {
		amount, err := order.NewMoney(100)
		require.NoError(t, err)

		_, err = order.NewOrder("", "", uuid.New(), order.KindProduct, amount, now)
		require.ErrorIs(t, err, order.ErrEmptyBuyer)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := order.NewMoney(-1)
		require.ErrorIs(t, err, order.ErrNegativeAmount)
	})
}

func TestBindCharge(t *testing.T) {
	now := time.Now()
	o := newPendingOrder(t, now)

	require.NoError(t, o.BindCharge("charge-123", "https://pay.example/123"))
	require.NotNil(t, o.ChargeID())
	assert.Equal(t, "charge-123", *o.ChargeID())

	err := o.BindCharge("charge-456", "https://pay.example/456")
	require.ErrorIs(t, err, order.ErrChargeAlreadyBound)
	assert.Equal(t, "charge-123", *o.ChargeID())
}

func TestStatusTransitions(t *testing.T) {
	now := time.Now()

	t.Run("pending approves once", func(t *testing.T) {
		o := newPendingOrder(t, now)

		require.NoError(t, o.Approve(now))
		assert.Equal(t, order.StatusApproved, o.Status())
		require.NotNil(t, o.ApprovedAt())
		assert.Equal(t, now, *o.ApprovedAt())

		require.ErrorIs(t, o.Approve(now), order.ErrNotPending)
	})

	t.Run("terminal states never move", func(t *testing.T) {
		cases := []struct {
			name      string
			terminate func(o *order.Order) error
		}{
			{name: "approved", terminate: func(o *order.Order) error { return o.Approve(now) }},
			{name: "expired", terminate: func(o *order.Order) error { return o.Expire() }},
			{name: "failed", terminate: func(o *order.Order) error { return o.Fail() }},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				o := newPendingOrder(t, now)
				require.NoError(t, c.terminate(o))

				assert.ErrorIs(t, o.Approve(now), order.ErrNotPending)
				assert.ErrorIs(t, o.Expire(), order.ErrNotPending)
				assert.ErrorIs(t, o.Fail(), order.ErrNotPending)
				assert.True(t, o.Status().IsTerminal())
			})
		}
	})

	t.Run("expired never becomes approved", func(t *testing.T) {
		o := newPendingOrder(t, now)
		require.NoError(t, o.Expire())
		require.ErrorIs(t, o.Approve(now), order.ErrNotPending)
		assert.Equal(t, order.StatusExpired, o.Status())
	})
}

func TestOlderThan(t *testing.T) {
	createdAt := time.Now()
	o := newPendingOrder(t, createdAt)

	assert.False(t, o.OlderThan(time.Hour, createdAt.Add(5*time.Minute)))
	assert.False(t, o.OlderThan(time.Hour, createdAt.Add(time.Hour)))
	assert.True(t, o.OlderThan(time.Hour, createdAt.Add(2*time.Hour)))
}
