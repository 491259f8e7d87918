//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"storebot/internal/domain/entitlement"
	"storebot/internal/domain/order"
	"storebot/internal/infra"
	"storebot/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the orders schema. Transitions use
// the same pending-only guard as the SQL repository, so concurrency tests
// exercise the real race semantics.
type fakeStore struct {
	mu           sync.Mutex
	orders       map[uuid.UUID]*shared.OrderSnapshot
	byCharge     map[string]uuid.UUID
	items        map[uuid.UUID]*shared.ItemSnapshot
	entitlements []*entitlement.Entitlement
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:   make(map[uuid.UUID]*shared.OrderSnapshot),
		byCharge: make(map[string]uuid.UUID),
		items:    make(map[uuid.UUID]*shared.ItemSnapshot),
	}
}

func (s *fakeStore) putOrder(snap *shared.OrderSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[snap.ID] = snap
	if snap.ChargeID != nil {
		s.byCharge[*snap.ChargeID] = snap.ID
	}
}

func (s *fakeStore) putItem(item *shared.ItemSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

func (s *fakeStore) orderStatus(id uuid.UUID) order.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id].Status
}

func (s *fakeStore) entitlementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entitlements)
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) Reads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Orders() shared.OrderRepository {
	return &fakeOrderRepo{store: t.store}
}

func (t *fakeTx) Entitlements() shared.EntitlementRepository {
	return &fakeEntitlementRepo{store: t.store}
}

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	snap := &shared.OrderSnapshot{
		ID:           o.ID(),
		BuyerID:      o.BuyerID(),
		BuyerContact: o.BuyerContact(),
		ItemID:       o.ItemID(),
		ItemKind:     o.ItemKind(),
		AmountCents:  o.Amount().Cents(),
		Status:       o.Status(),
		ChargeID:     o.ChargeID(),
		PaymentURL:   o.PaymentURL(),
		CreatedAt:    o.CreatedAt(),
		ApprovedAt:   o.ApprovedAt(),
	}
	r.store.putOrder(snap)
	return nil
}

func (r *fakeOrderRepo) BindCharge(_ context.Context, id uuid.UUID, chargeID, paymentURL string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap, ok := r.store.orders[id]
	if !ok || snap.ChargeID != nil {
		return false, nil
	}
	snap.ChargeID = &chargeID
	snap.PaymentURL = &paymentURL
	r.store.byCharge[chargeID] = id
	return true, nil
}

func (r *fakeOrderRepo) MarkApproved(_ context.Context, id uuid.UUID, approvedAt time.Time) (bool, error) {
	return r.transition(id, order.StatusApproved, &approvedAt)
}

func (r *fakeOrderRepo) MarkExpired(_ context.Context, id uuid.UUID) (bool, error) {
	return r.transition(id, order.StatusExpired, nil)
}

func (r *fakeOrderRepo) MarkFailed(_ context.Context, id uuid.UUID) (bool, error) {
	return r.transition(id, order.StatusFailed, nil)
}

func (r *fakeOrderRepo) transition(id uuid.UUID, to order.Status, approvedAt *time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap, ok := r.store.orders[id]
	if !ok || snap.Status != order.StatusPending {
		return false, nil
	}
	snap.Status = to
	if approvedAt != nil {
		snap.ApprovedAt = approvedAt
	}
	return true, nil
}

func (r *fakeOrderRepo) ExpireOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var n int64
	for _, snap := range r.store.orders {
		if snap.Status == order.StatusPending && snap.CreatedAt.Before(cutoff) {
			snap.Status = order.StatusExpired
			n++
		}
	}
	return n, nil
}

type fakeEntitlementRepo struct {
	store *fakeStore
}

func (r *fakeEntitlementRepo) Create(_ context.Context, e *entitlement.Entitlement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.entitlements = append(r.store.entitlements, e)
	return nil
}

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) OrderByID(_ context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap, ok := r.store.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) OrderByChargeID(_ context.Context, chargeID string) (*shared.OrderSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id, ok := r.store.byCharge[chargeID]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	cp := *r.store.orders[id]
	return &cp, nil
}

func (r *fakeReads) ItemByID(_ context.Context, id uuid.UUID) (*shared.ItemSnapshot, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	cp := *item
	return &cp, nil
}
