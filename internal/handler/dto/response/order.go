package response

import (
	"time"

	"storebot/internal/usecase/commands"
	"storebot/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateOrderResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	PaymentURL  string    `json:"payment_url"`
}

func FromCreateOrderResult(result *commands.CreateOrderResult) *CreateOrderResponse {
	return &CreateOrderResponse{
		OrderID:     result.OrderID,
		AmountCents: result.AmountCents,
		Status:      result.Status.String(),
		PaymentURL:  result.PaymentURL,
	}
}

type OrderResponse struct {
	ID          uuid.UUID  `json:"id"`
	BuyerID     string     `json:"buyer_id"`
	ItemID      uuid.UUID  `json:"item_id"`
	ItemKind    string     `json:"item_kind"`
	ItemName    string     `json:"item_name"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	PaymentURL  *string    `json:"payment_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

func FromOrderView(view *queries.OrderView) *OrderResponse {
	return &OrderResponse{
		ID:          view.ID,
		BuyerID:     view.BuyerID,
		ItemID:      view.ItemID,
		ItemKind:    view.ItemKind,
		ItemName:    view.ItemName,
		AmountCents: view.AmountCents,
		Status:      view.Status,
		PaymentURL:  view.PaymentURL,
		CreatedAt:   view.CreatedAt,
		ApprovedAt:  view.ApprovedAt,
	}
}

type WebhookResponse struct {
	Outcome string `json:"outcome"`
}
