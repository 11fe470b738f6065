package v1

import (
	"errors"

	"github.com/YJ-0220/product-sub000/internal/api/contract"
	"github.com/YJ-0220/product-sub000/internal/api/middleware"
	"github.com/YJ-0220/product-sub000/internal/api/validator"
	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var ErrInvalidID = errors.New("INVALID_ID")

type Handler struct {
	logger       *zap.Logger
	points       service.PointsService
	orders       service.OrderService
	applications service.ApplicationService
	workItems    service.WorkItemService
	XValidator   validator.IXValidator
}

func NewHandler(logger *zap.Logger, points service.PointsService, orders service.OrderService,
	applications service.ApplicationService, workItems service.WorkItemService,
	XValidator validator.IXValidator) *Handler {
	return &Handler{
		logger:       logger,
		points:       points,
		orders:       orders,
		applications: applications,
		workItems:    workItems,
		XValidator:   XValidator,
	}
}

func (h *Handler) respond(c *fiber.Ctx, status int, message string, result any) error {
	return c.Status(status).JSON(contract.Response{
		Successful: true,
		Code:       constants.ResponseCodeSuccess,
		Message:    message,
		TrackID:    contract.TrackID(c),
		Result:     result,
	})
}

func (h *Handler) invalid(c *fiber.Ctx, responseError contract.Response) error {
	h.logger.Warn("Invalid request",
		zap.String("path", c.Path()),
		zap.String("code", responseError.Code),
		zap.String("reason", responseError.Message))
	return c.JSON(responseError)
}

// actor is always present behind the auth middleware.
func (h *Handler) actor(c *fiber.Ctx) (service.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return service.Actor{}, service.NewServiceError(constants.ErrCodeUnauthorized, middleware.ErrMissingToken)
	}
	return actor, nil
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, service.NewServiceError(constants.ErrCodeValidationFailed, ErrInvalidID)
	}
	return int64(id), nil
}
