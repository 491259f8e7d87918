package request

import (
	"storebot/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	BuyerID      string    `json:"buyer_id" binding:"required"`
	BuyerContact string    `json:"buyer_contact" binding:"required"`
	ItemID       uuid.UUID `json:"item_id" binding:"required"`
}

func (r *CreateOrderRequest) ToParams() commands.CreateOrderParams {
	return commands.CreateOrderParams{
		BuyerID:      r.BuyerID,
		BuyerContact: r.BuyerContact,
		ItemID:       r.ItemID,
	}
}
