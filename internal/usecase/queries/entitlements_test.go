//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"storebot/internal/pkg/clock"
	"storebot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEntitlementStore struct {
	gotActiveAfter *time.Time
	views          []*queries.EntitlementView
}

func (s *stubEntitlementStore) ListByBuyer(_ context.Context, _ string, activeAfter *time.Time) ([]*queries.EntitlementView, error) {
	s.gotActiveAfter = activeAfter
	return s.views, nil
}

func TestEntitlementQueries_ActiveFlagDerivedFromClock(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	store := &stubEntitlementStore{
		views: []*queries.EntitlementView{
			{ID: uuid.New(), ExpiresAt: now.Add(time.Hour)},
			{ID: uuid.New(), ExpiresAt: now.Add(-time.Hour)},
			{ID: uuid.New(), ExpiresAt: now}, // expires exactly now: inactive
		},
	}
	q := queries.NewEntitlementQueries(store, clk)

	views, err := q.ListByBuyer(context.Background(), "buyer-1", false)
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.True(t, views[0].Active)
	assert.False(t, views[1].Active)
	assert.False(t, views[2].Active)
	assert.Nil(t, store.gotActiveAfter)
}

func TestEntitlementQueries_ActiveOnlyPushesPredicateToStore(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)
	store := &stubEntitlementStore{}
	q := queries.NewEntitlementQueries(store, clk)

	_, err := q.ListByBuyer(context.Background(), "buyer-1", true)
	require.NoError(t, err)

	require.NotNil(t, store.gotActiveAfter)
	assert.Equal(t, now, *store.gotActiveAfter)
}
