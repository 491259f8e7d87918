package response

import (
	"storebot/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemResponse struct {
	ID               uuid.UUID `json:"id"`
	Kind             string    `json:"kind"`
	Name             string    `json:"name"`
	PriceCents       int64     `json:"price_cents"`
	PassDurationDays *int32    `json:"pass_duration_days,omitempty"`
}

func FromItemView(view *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:               view.ID,
		Kind:             view.Kind,
		Name:             view.Name,
		PriceCents:       view.PriceCents,
		PassDurationDays: view.PassDurationDays,
	}
}
