package main

import (
	"context"

	"github.com/YJ-0220/product-sub000/internal/api"
	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/consumers"
	"github.com/YJ-0220/product-sub000/internal/database"
	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/YJ-0220/product-sub000/pkg/mq"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const consumerTag = "worker-reconcile"

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,

			database.NewConnection,
			database.NewTxManager,
			NewMQConnection,
			NewMQConsumer,

			repository.NewPointsAccountRepository,
			repository.NewPointsTransactionRepository,
			service.NewReconcileService,
			consumers.NewReconcileConsumer,
		),
		fx.Invoke(runReconcileConsumer),
	).Run()
}

func runReconcileConsumer(cfg *config.Config, consumer consumers.ReconcileConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	metricsApp := fiber.New(fiber.Config{DisableStartupMessage: true})
	metricsApp.Get("/metrics", api.NewHandler(logger, prometheus.DefaultGatherer).Metrics())

	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology([]string{cfg.Reconcile.Queue}); err != nil {
				logger.Error("Failed to declare topology", zap.Error(err))
				return err
			}

			go func() {
				if err := consumer.Consume(appCtx); err != nil {
					logger.Error("Reconcile consumer exited", zap.Error(err))
				}
			}()

			if cfg.Metrics.Port != "" {
				go func() {
					if err := metricsApp.Listen(cfg.Metrics.Port); err != nil {
						logger.Error("Metrics server stopped", zap.Error(err))
					}
				}()
			}

			logger.Info("Reconcile consumer started", zap.String("queue", cfg.Reconcile.Queue))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping reconcile consumer")
			cancel()
			if err := metricsApp.ShutdownWithContext(ctx); err != nil {
				logger.Warn("Failed to stop metrics server", zap.Error(err))
			}
			return rabbit.Close()
		},
	})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbit *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbit.CreateConsumer(consumerTag)
}
