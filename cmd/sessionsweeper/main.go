// The sessionsweeper binary periodically deletes browser sessions that idled
// past their expiry deadline.
package main

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
)

const sweepInterval = time.Hour

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewSessionRepository,
			auth.NewJWTService,
			impl.NewSessionService,
		),
		fx.Invoke(startSweeper),
	).Run()
}

type sweeperParams struct {
	fx.In
	fx.Lifecycle

	Sessions usecase.SessionUsecase
	Logger   *slog.Logger
}

func startSweeper(params sweeperParams) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go sweep(ctx, params.Sessions, params.Logger, done)

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done

			return nil
		},
	})
}

func sweep(ctx context.Context, sessions usecase.SessionUsecase, logger *slog.Logger, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	logger.Info("Session sweeper started", slog.Duration("interval", sweepInterval))

	// Run one sweep immediately so a crash-looping deployment still makes
	// progress.
	purge(ctx, sessions, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session sweeper stopped")

			return
		case <-ticker.C:
			purge(ctx, sessions, logger)
		}
	}
}

func purge(ctx context.Context, sessions usecase.SessionUsecase, logger *slog.Logger) {
	purged, err := sessions.PurgeExpired(ctx)
	if err != nil {
		logger.Error("Session sweep failed", slog.Any("error", err))

		return
	}

	logger.Debug("Session sweep completed", slog.Int64("purged", purged))
}
