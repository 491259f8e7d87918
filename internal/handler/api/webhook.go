package api

import (
	"errors"
	"net/http"

	reqdto "storebot/internal/handler/dto/request"
	resdto "storebot/internal/handler/dto/response"
	"storebot/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	reconcile commands.ReconcileCommands
}

func NewWebhookHandler(reconcile commands.ReconcileCommands) *WebhookHandler {
	return &WebhookHandler{
		reconcile: reconcile,
	}
}

// @Summary Receive payment notification
// @Description Handle an at-least-once payment notification from the gateway
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentWebhookRequest true "Gateway notification"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /webhooks/payments [post]
func (h *WebhookHandler) ReceivePayment(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid notification format",
		})
		return
	}

	outcome, err := h.reconcile.HandleNotification(c.Request.Context(), req.ToEvent())
	if err != nil {
		// Non-2xx makes the gateway redeliver; reconciliation is idempotent,
		// so replays of a transient failure are safe.
		switch {
		case errors.Is(err, commands.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.WebhookResponse{Outcome: string(outcome)})
}
