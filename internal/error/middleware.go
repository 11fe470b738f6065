package middleware

import (
	"errors"

	"github.com/YJ-0220/product-sub000/internal/api/contract"
	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr, logger)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(Response{
				Code:    fiberCode(fiberErr.Code),
				Message: fiberErr.Message,
				TrackID: contract.TrackID(c),
			})
		}

		logger.Error("Unhandled request error",
			zap.String("path", c.Path()),
			zap.String("trackID", contract.TrackID(c)),
			zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(Response{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
			TrackID: contract.TrackID(c),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error, logger *zap.Logger) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == fiber.StatusInternalServerError && err.Code != constants.ErrCodeInternalError {
		logger.Error("Request failed",
			zap.String("path", c.Path()),
			zap.String("code", err.Code),
			zap.String("trackID", contract.TrackID(c)),
			zap.Error(err.Cause))
		errorCode = constants.ErrCodeInternalError
	}

	return c.Status(status).JSON(Response{
		Code:    errorCode,
		Message: constants.GetErrorMessage(errorCode),
		TrackID: contract.TrackID(c),
	})
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return constants.ErrCodeNotFound
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return constants.ErrCodeInvalidRequestBody
	case fiber.StatusTooManyRequests:
		return constants.ErrCodeTooManyRequests
	}
	return constants.ErrCodeInternalError
}
