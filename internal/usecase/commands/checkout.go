package commands

import (
	"context"
	"log/slog"

	"storebot/internal/domain/catalog"
	"storebot/internal/domain/order"
	"storebot/internal/infra"
	"storebot/internal/pkg/clock"
	"storebot/internal/pkg/errs"
	"storebot/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound       = errs.New("item not found")
	ErrChargeCreateFailed = errs.New("charge creation failed")
	ErrChargeAlreadyBound = errs.New("charge already bound to order")
)

type CreateOrderParams struct {
	BuyerID      string
	BuyerContact string
	ItemID       uuid.UUID
}

type CreateOrderResult struct {
	OrderID     uuid.UUID
	AmountCents int64
	Status      order.Status
	PaymentURL  string
}

type CheckoutCommands interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*CreateOrderResult, error)
}

type checkoutUseCaseImpl struct {
	uow     shared.UnitOfWork
	gateway GatewayClient
	clock   clock.Clock
}

func NewCheckoutCommands(uow shared.UnitOfWork, gateway GatewayClient, clock clock.Clock) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:     uow,
		gateway: gateway,
		clock:   clock,
	}
}

// CreateOrder persists a pending order priced from the catalog (the client's
// idea of the price is never trusted), then creates the charge at the gateway
// and binds its id set-once. A gateway failure leaves the order pending and
// chargeless for the expiry sweep to reclaim.
func (c *checkoutUseCaseImpl) CreateOrder(ctx context.Context, params CreateOrderParams) (*CreateOrderResult, error) {
	item, err := c.uow.Reads().ItemByID(ctx, params.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	amount, err := order.NewMoney(item.PriceCents)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	ord, err := order.NewOrder(params.BuyerID, params.BuyerContact, item.ID, itemKindOf(item.Kind), amount, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Orders().Create(ctx, ord)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	handle, err := c.gateway.CreateCharge(ctx, CreateChargeInput{
		Correlation:  ord.Correlation(),
		Description:  item.Name,
		AmountCents:  amount.Cents(),
		BuyerContact: params.BuyerContact,
	})
	if err != nil {
		slog.Error("charge creation failed, order left pending",
			"order_id", ord.ID(), "error", err.Error())
		return nil, errs.Mark(err, ErrChargeCreateFailed)
	}

	var bound bool
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Orders().BindCharge(ctx, ord.ID(), handle.ChargeID, handle.PaymentURL)
		if err != nil {
			return err
		}
		bound = ok
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !bound {
		return nil, ErrChargeAlreadyBound
	}

	slog.Info("order created",
		"order_id", ord.ID(), "charge_id", handle.ChargeID, "amount_cents", amount.Cents())

	return &CreateOrderResult{
		OrderID:     ord.ID(),
		AmountCents: amount.Cents(),
		Status:      ord.Status(),
		PaymentURL:  handle.PaymentURL,
	}, nil
}

func itemKindOf(kind catalog.Kind) order.ItemKind {
	if kind == catalog.KindPass {
		return order.KindPass
	}
	return order.KindProduct
}
