package api

import (
	"context"

	"github.com/YJ-0220/product-sub000/internal/api/middleware"
	errorMiddleware "github.com/YJ-0220/product-sub000/internal/error"
	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const serviceName = "market-api"

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewApp builds the fiber app with the error handler and the middleware every
// route shares.
func NewApp(logger *zap.Logger, m *metrics.Metrics, health HealthChecker) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ErrorHandler:          errorMiddleware.ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	var check func(ctx context.Context) error
	if health != nil {
		check = health.HealthCheck
	}

	app.Use(middleware.TrackID())
	app.Use(middleware.HTTPMetrics(m, logger))
	app.Use(middleware.HealthCheck(serviceName, check))

	return app
}
