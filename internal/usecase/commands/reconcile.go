package commands

import (
	"context"
	"log/slog"
	"time"

	"storebot/internal/domain/entitlement"
	"storebot/internal/domain/order"
	"storebot/internal/infra"
	"storebot/internal/pkg/clock"
	"storebot/internal/pkg/config"
	"storebot/internal/pkg/errs"
	"storebot/internal/usecase/shared"
)

var (
	ErrGatewayUnavailable      = errs.New("payment gateway unavailable")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// Outcome is the business result of one notification delivery. Every value
// maps to a success-class HTTP response at the webhook boundary; the gateway
// must not be provoked into retrying a decision that was already made.
type Outcome string

const (
	// OutcomeIgnored: the event does not resolve to a known order, or the
	// authoritative status requires no transition yet.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeAlreadyProcessed: the order is already terminal; at-least-once
	// redelivery lands here with no side effects.
	OutcomeAlreadyProcessed Outcome = "already_processed"
	OutcomeApproved         Outcome = "approved"
	// OutcomeExpiredOnArrival: the gateway approved a charge the storefront
	// had already abandoned; the order expires and nothing is delivered.
	OutcomeExpiredOnArrival Outcome = "expired_on_arrival"
	// OutcomeFailed: the gateway reports the charge can never be paid.
	OutcomeFailed Outcome = "failed"
)

// PaymentEvent is the untrusted inbound signal. ClaimedStatus is recorded for
// observability only; it never drives a transition.
type PaymentEvent struct {
	ChargeID      string
	ClaimedStatus string
}

type ReconcileCommands interface {
	HandleNotification(ctx context.Context, ev PaymentEvent) (Outcome, error)
}

type reconcileUseCaseImpl struct {
	uow           shared.UnitOfWork
	gateway       GatewayClient
	dispatcher    FulfillmentDispatcher
	clock         clock.Clock
	expiryWindow  time.Duration
	statusTimeout time.Duration
}

func NewReconcileCommands(
	uow shared.UnitOfWork,
	gateway GatewayClient,
	dispatcher FulfillmentDispatcher,
	clock clock.Clock,
	engineCfg config.EngineConfig,
	gatewayCfg config.GatewayConfig,
) ReconcileCommands {
	return &reconcileUseCaseImpl{
		uow:           uow,
		gateway:       gateway,
		dispatcher:    dispatcher,
		clock:         clock,
		expiryWindow:  engineCfg.ExpiryWindow,
		statusTimeout: gatewayCfg.StatusTimeout,
	}
}

func (r *reconcileUseCaseImpl) HandleNotification(ctx context.Context, ev PaymentEvent) (Outcome, error) {
	if ev.ChargeID == "" {
		return OutcomeIgnored, nil
	}

	ord, err := r.uow.Reads().OrderByChargeID(ctx, ev.ChargeID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Info("notification for unknown charge ignored", "charge_id", ev.ChargeID)
			return OutcomeIgnored, nil
		}
		return "", errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if ord.Status.IsTerminal() {
		slog.Info("duplicate notification for settled order",
			"order_id", ord.ID, "status", ord.Status.String())
		return OutcomeAlreadyProcessed, nil
	}

	// The claimed status is untrusted: re-verify against the gateway before
	// touching any state. A timeout here leaves the order pending and counts
	// on the gateway redelivering.
	statusCtx, cancel := context.WithTimeout(ctx, r.statusTimeout)
	defer cancel()

	result, err := r.gateway.GetChargeStatus(statusCtx, ev.ChargeID)
	if err != nil {
		return "", errs.Mark(err, ErrGatewayUnavailable)
	}

	if ev.ClaimedStatus != "" && ev.ClaimedStatus != string(result.Status) {
		slog.Warn("notification status disagrees with gateway",
			"order_id", ord.ID, "claimed", ev.ClaimedStatus, "authoritative", string(result.Status))
	}

	switch {
	case result.Status == ChargeApproved:
		if r.clock.Now().Sub(ord.CreatedAt) > r.expiryWindow {
			return r.expireLateApproval(ctx, ord)
		}
		return r.approve(ctx, ord, result)

	case result.Status.Dead():
		return r.fail(ctx, ord)

	default:
		// Still pending at the gateway, or a retryable rejection. The expiry
		// sweep owns timing this order out.
		return OutcomeIgnored, nil
	}
}

func (r *reconcileUseCaseImpl) approve(ctx context.Context, ord *shared.OrderSnapshot, result ChargeStatusResult) (Outcome, error) {
	if result.ApprovedAmountCents != nil && *result.ApprovedAmountCents < ord.AmountCents {
		slog.Warn("approved amount below order amount",
			"order_id", ord.ID, "approved_cents", *result.ApprovedAmountCents, "order_cents", ord.AmountCents)
	}

	item, err := r.uow.Reads().ItemByID(ctx, ord.ItemID)
	if err != nil {
		return "", errs.Mark(err, ErrDatabaseOperationFailed)
	}

	now := r.clock.Now()
	var (
		transitioned bool
		delivery     Delivery
	)

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Orders().MarkApproved(ctx, ord.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			// Lost the race against a concurrent delivery of the same event.
			return nil
		}
		transitioned = true

		delivery = Delivery{
			OrderID:      ord.ID,
			BuyerID:      ord.BuyerID,
			BuyerContact: ord.BuyerContact,
			ItemName:     item.Name,
			Kind:         ord.ItemKind,
			DeliveryURL:  item.DeliveryURL,
		}

		if ord.ItemKind == order.KindPass {
			ent, err := entitlement.NewEntitlement(ord.ID, ord.BuyerID, ord.ItemID, now, item.PassDuration())
			if err != nil {
				return err
			}
			if err := tx.Entitlements().Create(ctx, ent); err != nil {
				return err
			}
			entID := ent.ID()
			expiresAt := ent.ExpiresAt()
			delivery.EntitlementID = &entID
			delivery.AccessExpiresAt = &expiresAt
		}
		return nil
	})
	if err != nil {
		return "", errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !transitioned {
		return OutcomeAlreadyProcessed, nil
	}

	slog.Info("order approved", "order_id", ord.ID, "kind", ord.ItemKind.String())

	// Payment is captured, so approval stands regardless of delivery; a
	// deferred delivery is the dispatcher's problem to retry.
	res, err := r.dispatcher.Deliver(ctx, delivery)
	if err != nil {
		slog.Error("fulfillment dispatch failed", "order_id", ord.ID, "error", err.Error())
	} else if res.State == DeliveryDeferred {
		slog.Warn("fulfillment deferred", "order_id", ord.ID, "reason", res.Reason)
	}

	return OutcomeApproved, nil
}

func (r *reconcileUseCaseImpl) expireLateApproval(ctx context.Context, ord *shared.OrderSnapshot) (Outcome, error) {
	var transitioned bool
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Orders().MarkExpired(ctx, ord.ID)
		if err != nil {
			return err
		}
		transitioned = ok
		return nil
	})
	if err != nil {
		return "", errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !transitioned {
		return OutcomeAlreadyProcessed, nil
	}

	slog.Warn("late approval expired without fulfillment",
		"order_id", ord.ID, "age", r.clock.Now().Sub(ord.CreatedAt).String())
	return OutcomeExpiredOnArrival, nil
}

func (r *reconcileUseCaseImpl) fail(ctx context.Context, ord *shared.OrderSnapshot) (Outcome, error) {
	var transitioned bool
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Orders().MarkFailed(ctx, ord.ID)
		if err != nil {
			return err
		}
		transitioned = ok
		return nil
	})
	if err != nil {
		return "", errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !transitioned {
		return OutcomeAlreadyProcessed, nil
	}

	slog.Info("order failed at gateway", "order_id", ord.ID)
	return OutcomeFailed, nil
}
