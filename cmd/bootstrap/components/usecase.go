package components

import (
	"storebot/internal/pkg/clock"
	"storebot/internal/pkg/config"
	"storebot/internal/usecase/commands"
	"storebot/internal/usecase/queries"
	"storebot/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(
			uow shared.UnitOfWork,
			gw commands.GatewayClient,
			dispatcher commands.FulfillmentDispatcher,
			clk clock.Clock,
			cfg config.Config,
		) commands.ReconcileCommands {
			return commands.NewReconcileCommands(uow, gw, dispatcher, clk, cfg.Engine, cfg.Gateway)
		},
		commands.NewCheckoutCommands,
		func(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) commands.SweepCommands {
			return commands.NewSweepCommands(uow, clk, cfg.Engine)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewCatalogQueries,
		queries.NewEntitlementQueries,
	),
)
