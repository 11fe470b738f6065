package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const slowRequestThreshold = time.Second

// HTTPMetrics records request count, duration and size per route.
func HTTPMetrics(m *metrics.Metrics, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		err := c.Next()
		if err != nil {
			// Render now so the recorded status is the one the client sees.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}

		duration := time.Since(start)

		method := c.Method()
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		statusCode := strconv.Itoa(c.Response().StatusCode())
		responseSize := len(c.Response().Body())

		m.RecordHTTPRequest(method, path, statusCode, duration, responseSize)

		if duration > slowRequestThreshold {
			logger.Warn("Slow HTTP request",
				zap.String("method", method),
				zap.String("path", path),
				zap.String("statusCode", statusCode),
				zap.Duration("duration", duration),
				zap.Int("responseSize", responseSize),
			)
		}

		return err
	}
}

// HealthCheck answers /health, reporting the database as unhealthy when
// check fails.
func HealthCheck(serviceName string, check func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() != "/health" {
			return c.Next()
		}

		status, code := "healthy", fiber.StatusOK
		if check != nil {
			if err := check(c.UserContext()); err != nil {
				status, code = "unhealthy", fiber.StatusServiceUnavailable
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"status":    status,
			"timestamp": time.Now().Unix(),
			"service":   serviceName,
		})
	}
}
