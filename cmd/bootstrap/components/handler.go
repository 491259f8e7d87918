package components

import (
	"storebot/internal/handler"
	"storebot/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewWebhookHandler,
		api.NewOrderHandler,
		api.NewCatalogHandler,
		api.NewEntitlementHandler,
	),
	fx.Invoke(handler.NewRouter),
)
