package main

import (
	"context"
	"fmt"

	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/database"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type options struct {
	down int
}

func main() {
	var opts options
	pflag.IntVarP(&opts.down, "down", "d", 0, "roll back this many migrations instead of applying pending ones")
	pflag.Parse()

	fx.New(
		fx.Supply(opts),
		fx.Provide(
			config.Load,
			zap.NewProduction,
			database.NewMigrator,
		),
		fx.Invoke(runMigrations),
		fx.NopLogger,
	).Run()
}

func runMigrations(opts options, migrator *database.Migrator, logger *zap.Logger, shutdowner fx.Shutdowner,
	lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			if opts.down > 0 {
				logger.Info("Rolling back migrations", zap.Int("steps", opts.down))
				err = migrator.Down(opts.down)
			} else {
				logger.Info("Applying migrations")
				err = migrator.Up()
			}
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			return shutdowner.Shutdown()
		},
		OnStop: func(ctx context.Context) error {
			return migrator.Close()
		},
	})
}
