package middleware

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/YJ-0220/product-sub000/internal/config"
	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/model"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	ActorLocal   = "actor"
	bearerPrefix = "Bearer "
)

var (
	ErrMissingToken   = errors.New("MISSING_TOKEN")
	ErrInvalidToken   = errors.New("INVALID_TOKEN")
	ErrRoleNotAllowed = errors.New("ROLE_NOT_ALLOWED")
)

// Claims is the bearer token payload. Subject holds the numeric user id.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

type Auth struct {
	secret []byte
	users  service.UserService
	logger *zap.Logger
}

func NewAuth(cfg *config.Config, users service.UserService, logger *zap.Logger) *Auth {
	return &Auth{secret: []byte(cfg.API.JWTSecret), users: users, logger: logger}
}

// Authenticate verifies an HS256 bearer token and stores the resolved actor in
// the request locals.
func (a *Auth) Authenticate() fiber.Handler {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(c *fiber.Ctx) error {
		raw, found := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), bearerPrefix)
		if !found || raw == "" {
			return service.NewServiceError(constants.ErrCodeUnauthorized, ErrMissingToken)
		}

		claims := &Claims{}
		_, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return a.secret, nil })
		if err != nil {
			a.logger.Warn("Rejected bearer token", zap.String("path", c.Path()), zap.Error(err))
			return service.NewServiceError(constants.ErrCodeUnauthorized, ErrInvalidToken)
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil || userID <= 0 {
			return service.NewServiceError(constants.ErrCodeUnauthorized, ErrInvalidToken)
		}

		actor, err := a.users.ResolveActor(c.UserContext(), userID)
		if err != nil {
			return err
		}

		c.Locals(ActorLocal, actor)
		return c.Next()
	}
}

// RequireRole lets the request through only for the given roles.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return service.NewServiceError(constants.ErrCodeUnauthorized, ErrMissingToken)
		}

		if !slices.Contains(roles, actor.Role) {
			return service.NewServiceError(constants.ErrCodeForbidden, ErrRoleNotAllowed)
		}

		return c.Next()
	}
}

func ActorFrom(c *fiber.Ctx) (service.Actor, bool) {
	actor, ok := c.Locals(ActorLocal).(service.Actor)
	return actor, ok
}
