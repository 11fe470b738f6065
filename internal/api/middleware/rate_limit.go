package middleware

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var ErrRateLimited = errors.New("RATE_LIMITED")

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per actor, falling back to the client IP
// for unauthenticated requests.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewRateLimiter(cfg *config.Config, metrics *metrics.Metrics, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.API.RateLimit.RPS),
		burst:    cfg.API.RateLimit.Burst,
		idleTTL:  cfg.API.RateLimit.IdleTTL,
		metrics:  metrics,
		logger:   logger,
	}
}

func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "ip:" + c.IP()
		if actor, ok := ActorFrom(c); ok {
			key = "user:" + strconv.FormatInt(actor.UserID, 10)
		}

		if !rl.allow(key, time.Now()) {
			rl.metrics.RecordRateLimited()
			rl.logger.Warn("Rate limit exceeded", zap.String("key", key), zap.String("path", c.Path()))
			return service.NewServiceError(constants.ErrCodeTooManyRequests, ErrRateLimited)
		}

		return c.Next()
	}
}

func (rl *RateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Cleanup drops buckets idle for longer than the configured TTL.
func (rl *RateLimiter) Cleanup(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.visitors, key)
			removed++
		}
	}

	return removed
}
