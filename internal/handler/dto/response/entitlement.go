package response

import (
	"time"

	"storebot/internal/usecase/queries"

	"github.com/google/uuid"
)

type EntitlementResponse struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ItemID    uuid.UUID `json:"item_id"`
	StartsAt  time.Time `json:"starts_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Active    bool      `json:"active"`
}

func FromEntitlementView(view *queries.EntitlementView) *EntitlementResponse {
	return &EntitlementResponse{
		ID:        view.ID,
		OrderID:   view.OrderID,
		ItemID:    view.ItemID,
		StartsAt:  view.StartsAt,
		ExpiresAt: view.ExpiresAt,
		Active:    view.Active,
	}
}
