package main

import (
	"context"
	"time"

	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/database"
	"github.com/YJ-0220/product-sub000/internal/publishers"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/YJ-0220/product-sub000/pkg/mq"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,

			database.NewConnection,
			NewMQConnection,
			NewMQPublisher,

			repository.NewPointsAccountRepository,
			service.NewReconcileQueueService,
			publishers.NewReconcilePublisher,
		),
		fx.Invoke(runReconcilePublisher),
	).Run()
}

func runReconcilePublisher(cfg *config.Config, publisher publishers.ReconcilePublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{cfg.Reconcile.Queue}); err != nil {
				logger.Error("Failed to declare topology", zap.Error(err))
				return err
			}

			go func() {
				ticker := time.NewTicker(cfg.Reconcile.Interval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if _, err := publisher.Publish(appCtx); err != nil {
							logger.Error("Failed to publish reconcile commands", zap.Error(err))
						}
					case <-appCtx.Done():
						return
					}
				}
			}()

			logger.Info("Reconcile publisher started",
				zap.String("queue", cfg.Reconcile.Queue),
				zap.Duration("interval", cfg.Reconcile.Interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping reconcile publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbit *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbit.CreatePublisher()
}
