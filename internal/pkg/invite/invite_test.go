//go:build unit

package invite_test

import (
	"testing"
	"time"

	"storebot/internal/pkg/invite"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteRoundTrip(t *testing.T) {
	svc := invite.NewService("secret")
	entID := uuid.New()
	now := time.Now()

	token, err := svc.Mint(entID, "buyer-1", now, now.Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, entID, claims.EntitlementID)
	assert.Equal(t, "buyer-1", claims.BuyerID)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestInviteExpired(t *testing.T) {
	svc := invite.NewService("secret")
	now := time.Now()

	token, err := svc.Mint(uuid.New(), "buyer-1", now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.ErrorIs(t, err, invite.ErrExpiredInvite)
}

func TestInviteWrongSecret(t *testing.T) {
	now := time.Now()
	token, err := invite.NewService("secret-a").Mint(uuid.New(), "buyer-1", now, now.Add(time.Hour))
	require.NoError(t, err)

	_, err = invite.NewService("secret-b").Validate(token)
	require.ErrorIs(t, err, invite.ErrInvalidInvite)
}
