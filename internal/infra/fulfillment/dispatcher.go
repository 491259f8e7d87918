package fulfillment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storebot/internal/domain/order"
	"storebot/internal/pkg/clock"
	"storebot/internal/pkg/errs"
	"storebot/internal/pkg/invite"
	"storebot/internal/usecase/commands"
)

// Notifier delivers a rendered message to a buyer's contact address.
type Notifier interface {
	Send(ctx context.Context, recipient, text string) error
}

const (
	sendAttempts = 3
	sendBackoff  = 500 * time.Millisecond
)

// Dispatcher turns an approved order into exactly one buyer-visible delivery.
// The claim store deduplicates across concurrent and redelivered
// notifications; a failed send releases the claim so the next notification
// can retry it.
type Dispatcher struct {
	claims   ClaimStore
	notifier Notifier
	invites  *invite.Service
	clock    clock.Clock
}

func NewDispatcher(claims ClaimStore, notifier Notifier, invites *invite.Service, clk clock.Clock) *Dispatcher {
	return &Dispatcher{
		claims:   claims,
		notifier: notifier,
		invites:  invites,
		clock:    clk,
	}
}

var _ commands.FulfillmentDispatcher = (*Dispatcher)(nil)

func (d *Dispatcher) Deliver(ctx context.Context, delivery commands.Delivery) (commands.DeliveryResult, error) {
	acquired, err := d.claims.Claim(ctx, delivery.OrderID)
	if err != nil {
		return commands.DeliveryResult{}, err
	}
	if !acquired {
		slog.Info("delivery already claimed, suppressing duplicate", "order_id", delivery.OrderID)
		return commands.DeliveryResult{State: commands.DeliveryDelivered, Reason: "duplicate suppressed"}, nil
	}

	text, err := d.renderMessage(delivery)
	if err != nil {
		// Rendering never gets better on retry; keep the claim so we do not
		// spam the buyer while the data problem is investigated.
		return commands.DeliveryResult{}, err
	}

	if err := d.sendWithRetry(ctx, delivery.BuyerContact, text); err != nil {
		if releaseErr := d.claims.Release(ctx, delivery.OrderID); releaseErr != nil {
			slog.Error("failed to release claim after send failure",
				"order_id", delivery.OrderID, "error", releaseErr.Error())
		}
		return commands.DeliveryResult{State: commands.DeliveryDeferred, Reason: err.Error()}, nil
	}

	return commands.DeliveryResult{State: commands.DeliveryDelivered}, nil
}

func (d *Dispatcher) renderMessage(delivery commands.Delivery) (string, error) {
	switch delivery.Kind {
	case order.KindPass:
		if delivery.EntitlementID == nil || delivery.AccessExpiresAt == nil {
			return "", errs.New("pass delivery missing entitlement data")
		}
		token, err := d.invites.Mint(*delivery.EntitlementID, delivery.BuyerID, d.clock.Now(), *delivery.AccessExpiresAt)
		if err != nil {
			return "", errs.Wrap(err, "failed to mint invite token")
		}
		return fmt.Sprintf(
			"Payment confirmed! Your %s pass is active until %s.\nUse this invite to join: %s",
			delivery.ItemName,
			delivery.AccessExpiresAt.UTC().Format("2006-01-02 15:04 MST"),
			token,
		), nil

	default:
		if delivery.DeliveryURL == nil || *delivery.DeliveryURL == "" {
			return "", errs.New("product delivery missing download url")
		}
		return fmt.Sprintf(
			"Payment confirmed! Here is your %s: %s",
			delivery.ItemName,
			*delivery.DeliveryURL,
		), nil
	}
}

func (d *Dispatcher) sendWithRetry(ctx context.Context, recipient, text string) error {
	var lastErr error
	for attempt := 0; attempt < sendAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * sendBackoff):
			}
		}

		lastErr = d.notifier.Send(ctx, recipient, text)
		if lastErr == nil {
			return nil
		}
		slog.Warn("notifier send failed",
			"attempt", attempt+1, "error", lastErr.Error())
	}
	return errs.Wrap(lastErr, "all send attempts exhausted")
}
