package request

import (
	"storebot/internal/usecase/commands"
)

// PaymentWebhookRequest mirrors the gateway's notification envelope. Only the
// charge id matters; the claimed status is recorded for observability and
// never trusted. The envelope fields must stay complete because unknown JSON
// fields are rejected globally.
type PaymentWebhookRequest struct {
	ID          int64  `json:"id"`
	Action      string `json:"action"`
	Type        string `json:"type"`
	APIVersion  string `json:"api_version"`
	DateCreated string `json:"date_created"`
	LiveMode    bool   `json:"live_mode"`
	UserID      any    `json:"user_id"`
	Data        struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"data" binding:"required"`
}

func (r *PaymentWebhookRequest) ToEvent() commands.PaymentEvent {
	return commands.PaymentEvent{
		ChargeID:      r.Data.ID,
		ClaimedStatus: r.Data.Status,
	}
}
