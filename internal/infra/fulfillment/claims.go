package fulfillment

import (
	"context"
	"time"

	"storebot/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClaimStore arbitrates which handler gets to send the delivery for an order.
// The database guarantees the transition happens once; the claim guarantees
// the buyer hears about it once.
type ClaimStore interface {
	// Claim returns true if this caller acquired the delivery for the order.
	Claim(ctx context.Context, orderID uuid.UUID) (bool, error)
	// Release gives the claim back so a later retry can attempt the send.
	Release(ctx context.Context, orderID uuid.UUID) error
}

const claimTTL = 24 * time.Hour

type RedisClaimStore struct {
	client *redis.Client
}

func NewRedisClaimStore(client *redis.Client) *RedisClaimStore {
	return &RedisClaimStore{client: client}
}

var _ ClaimStore = (*RedisClaimStore)(nil)

func claimKey(orderID uuid.UUID) string {
	return "fulfillment:claim:" + orderID.String()
}

func (s *RedisClaimStore) Claim(ctx context.Context, orderID uuid.UUID) (bool, error) {
	ok, err := s.client.SetNX(ctx, claimKey(orderID), "1", claimTTL).Result()
	if err != nil {
		return false, errs.Wrap(err, "failed to acquire fulfillment claim")
	}
	return ok, nil
}

func (s *RedisClaimStore) Release(ctx context.Context, orderID uuid.UUID) error {
	if err := s.client.Del(ctx, claimKey(orderID)).Err(); err != nil {
		return errs.Wrap(err, "failed to release fulfillment claim")
	}
	return nil
}
