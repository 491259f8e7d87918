package components

import (
	"storebot/internal/infra/readstore"
	"storebot/internal/infra/uow"
	"storebot/internal/usecase/queries"
	"storebot/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewReadDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogReadStore)),
		),
		fx.Annotate(
			readstore.NewEntitlementReadStore,
			fx.As(new(queries.EntitlementReadStore)),
		),
	),
)

// Read stores outside the unit of work query the pool directly.
func NewReadDBTX(pool *pgxpool.Pool) readstore.DBTX {
	return pool
}
