package commands

import (
	"context"
	"log/slog"
	"time"

	"storebot/internal/pkg/clock"
	"storebot/internal/pkg/config"
	"storebot/internal/pkg/errs"
	"storebot/internal/usecase/shared"
)

// SweepCommands reclaims pending orders the gateway never called back about.
// It shares the repository's pending-only guard with notification handling,
// so running concurrently with a webhook on the same order is safe.
type SweepCommands interface {
	ExpireStale(ctx context.Context) (int64, error)
}

type sweepUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	window time.Duration
}

func NewSweepCommands(uow shared.UnitOfWork, clock clock.Clock, cfg config.EngineConfig) SweepCommands {
	return &sweepUseCaseImpl{
		uow:    uow,
		clock:  clock,
		window: cfg.ExpiryWindow,
	}
}

func (s *sweepUseCaseImpl) ExpireStale(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-s.window)

	var expired int64
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Orders().ExpireOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		expired = n
		return nil
	})
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if expired > 0 {
		slog.Info("expired stale pending orders", "count", expired, "cutoff", cutoff)
	}
	return expired, nil
}
