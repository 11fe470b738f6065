package main

import (
	"context"
	"time"

	"github.com/YJ-0220/product-sub000/internal/api"
	"github.com/YJ-0220/product-sub000/internal/api/middleware"
	"github.com/YJ-0220/product-sub000/internal/api/v1"
	"github.com/YJ-0220/product-sub000/internal/api/validator"
	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/database"
	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/YJ-0220/product-sub000/internal/repository"
	"github.com/YJ-0220/product-sub000/internal/service"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,

			database.NewConnection,
			database.NewTxManager,
			metrics.NewDatabaseMetricsCollector,
			metrics.NewSystemCollector,

			repository.NewUserRepository,
			repository.NewPointsAccountRepository,
			repository.NewPointsTransactionRepository,
			repository.NewChargeRequestRepository,
			repository.NewWithdrawRequestRepository,
			repository.NewOrderRepository,
			repository.NewApplicationRepository,
			repository.NewWorkItemRepository,

			service.NewLedger,
			service.NewUserService,
			service.NewPointsService,
			service.NewOrderService,
			service.NewApplicationService,
			service.NewWorkItemService,

			NewXValidator,
			NewSystemHandler,
			NewApp,
			v1.NewHandler,
			middleware.NewAuth,
			middleware.NewRateLimiter,
		),
		fx.Invoke(startServer),
	).Run()
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewXValidator(m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(playground.New(), m)
}

func NewSystemHandler(logger *zap.Logger) *api.Handler {
	return api.NewHandler(logger, prometheus.DefaultGatherer)
}

func NewApp(logger *zap.Logger, m *metrics.Metrics, dbCollector *metrics.DatabaseMetricsCollector) *fiber.App {
	return api.NewApp(logger, m, dbCollector)
}

func startServer(app *fiber.App, system *api.Handler, handler *v1.Handler, auth *middleware.Auth,
	limiter *middleware.RateLimiter, dbCollector *metrics.DatabaseMetricsCollector,
	systemCollector *metrics.SystemCollector, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, system, handler, auth, limiter)

	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dbCollector.Start(cfg.Metrics.Interval)
			systemCollector.Start(cfg.Metrics.Interval, version)

			go cleanupLimiter(appCtx, limiter, cfg.API.RateLimit.IdleTTL, logger)

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			logger.Info("API server started", zap.String("port", cfg.API.Port), zap.String("version", version))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping API server")
			cancel()
			dbCollector.Stop()
			systemCollector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}

func cleanupLimiter(ctx context.Context, limiter *middleware.RateLimiter, idleTTL time.Duration, logger *zap.Logger) {
	if idleTTL <= 0 {
		idleTTL = time.Minute
	}

	ticker := time.NewTicker(idleTTL)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			if removed := limiter.Cleanup(now); removed > 0 {
				logger.Debug("Rate limiter buckets evicted", zap.Int("count", removed))
			}
		case <-ctx.Done():
			return
		}
	}
}
