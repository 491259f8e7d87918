package components

import (
	"context"
	"log/slog"
	"time"

	"storebot/internal/pkg/config"
	"storebot/internal/usecase/commands"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(startSweepWorker),
)

// startSweepWorker runs the expiry sweep on a fixed interval for the lifetime
// of the application. The sweep is idempotent, so overlapping with webhook
// processing or another instance is harmless.
func startSweepWorker(lc fx.Lifecycle, sweep commands.SweepCommands, cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)

				ticker := time.NewTicker(cfg.Engine.SweepInterval)
				defer ticker.Stop()

				slog.Info("sweep worker started", "interval", cfg.Engine.SweepInterval.String())

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if _, err := sweep.ExpireStale(ctx); err != nil {
							slog.Error("expiry sweep failed", "error", err.Error())
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
