package bootstrap

import (
	"storebot/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	InviteModule,
	components.PersistenceModule,
	components.FulfillmentModule,
	components.UseCaseModule,
	components.HandlerModule,
	components.WorkerModule,
)
