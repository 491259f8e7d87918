package components

import (
	"storebot/internal/infra/fulfillment"
	"storebot/internal/infra/gateway"
	"storebot/internal/infra/notify"
	"storebot/internal/pkg/config"
	"storebot/internal/usecase/commands"

	"go.uber.org/fx"
)

var FulfillmentModule = fx.Module("fulfillment",
	fx.Provide(
		fx.Annotate(
			func(cfg config.Config) *gateway.MercadoPagoClient {
				return gateway.NewMercadoPagoClient(cfg.Gateway)
			},
			fx.As(new(commands.GatewayClient)),
		),
		fx.Annotate(
			func(cfg config.Config) *notify.TelegramNotifier {
				return notify.NewTelegramNotifier(cfg.Bot)
			},
			fx.As(new(fulfillment.Notifier)),
		),
		fx.Annotate(
			fulfillment.NewRedisClaimStore,
			fx.As(new(fulfillment.ClaimStore)),
		),
		fx.Annotate(
			fulfillment.NewDispatcher,
			fx.As(new(commands.FulfillmentDispatcher)),
		),
	),
)
