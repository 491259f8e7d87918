package bootstrap

import (
	"storebot/internal/pkg/config"
	"storebot/internal/pkg/invite"

	"go.uber.org/fx"
)

var InviteModule = fx.Module("invite",
	fx.Provide(
		func(cfg config.Config) *invite.Service {
			return invite.NewService(cfg.Invite.Secret)
		},
	),
)
