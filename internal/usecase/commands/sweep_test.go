//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"storebot/internal/domain/order"
	"storebot/internal/pkg/clock"
	"storebot/internal/pkg/config"
	"storebot/internal/usecase/commands"
	"storebot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPending(store *fakeStore, createdAt time.Time) uuid.UUID {
	id := uuid.New()
	store.putOrder(&shared.OrderSnapshot{
		ID:          id,
		BuyerID:     "buyer-1",
		ItemID:      uuid.New(),
		ItemKind:    order.KindProduct,
		AmountCents: 1000,
		Status:      order.StatusPending,
		CreatedAt:   createdAt,
	})
	return id
}

func TestSweep_ExpiresOnlyStalePendingOrders(t *testing.T) {
	store := newFakeStore()
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	sweep := commands.NewSweepCommands(&fakeUoW{store: store}, clk, config.EngineConfig{ExpiryWindow: time.Hour})

	stale := seedPending(store, clk.Now().Add(-2*time.Hour))
	fresh := seedPending(store, clk.Now().Add(-10*time.Minute))

	approved := seedPending(store, clk.Now().Add(-3*time.Hour))
	store.mu.Lock()
	store.orders[approved].Status = order.StatusApproved
	store.mu.Unlock()

	n, err := sweep.ExpireStale(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), n)
	assert.Equal(t, order.StatusExpired, store.orderStatus(stale))
	assert.Equal(t, order.StatusPending, store.orderStatus(fresh))
	assert.Equal(t, order.StatusApproved, store.orderStatus(approved))
}

func TestSweep_BoundaryIsExclusive(t *testing.T) {
	store := newFakeStore()
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	sweep := commands.NewSweepCommands(&fakeUoW{store: store}, clk, config.EngineConfig{ExpiryWindow: time.Hour})

	// Exactly at the cutoff: not yet stale.
	atWindow := seedPending(store, clk.Now().Add(-time.Hour))

	n, err := sweep.ExpireStale(context.Background())
	require.NoError(t, err)

	assert.Zero(t, n)
	assert.Equal(t, order.StatusPending, store.orderStatus(atWindow))
}

func TestSweep_NothingToExpire(t *testing.T) {
	store := newFakeStore()
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	sweep := commands.NewSweepCommands(&fakeUoW{store: store}, clk, config.EngineConfig{ExpiryWindow: time.Hour})

	n, err := sweep.ExpireStale(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
