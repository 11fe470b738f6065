package validator

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/YJ-0220/product-sub000/internal/api/contract"
	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	sep = " and "
)

type Error struct {
	Error       bool
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validator(data any, message string, c *fiber.Ctx) (responseErr contract.Response)
	QueryValidator(data any, message string, c *fiber.Ctx) (responseErr contract.Response)
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validator *validator.Validate, metrics *metrics.Metrics) IXValidator {
	for key, function := range valid {
		_ = validator.RegisterValidation(key, function)
	}
	validator.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return &XValidator{
		validator: validator,
		metrics:   metrics,
	}
}

// Validator parses the request body into data and validates it. A non-empty
// Code in the result means the response status is already set.
func (x XValidator) Validator(data any, message string, c *fiber.Ctx) (responseErr contract.Response) {
	if err := c.BodyParser(data); err != nil {
		return x.parseError(c)
	}
	return x.check(data, message, c)
}

// QueryValidator is Validator for query string parameters.
func (x XValidator) QueryValidator(data any, message string, c *fiber.Ctx) (responseErr contract.Response) {
	if err := c.QueryParser(data); err != nil {
		return x.parseError(c)
	}
	return x.check(data, message, c)
}

func (x XValidator) parseError(c *fiber.Ctx) contract.Response {
	c.Status(http.StatusBadRequest)

	return contract.Response{
		Code:    constants.ErrCodeInvalidRequestBody,
		Message: constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		TrackID: contract.TrackID(c),
	}
}

func (x XValidator) check(data any, message string, c *fiber.Ctx) (responseErr contract.Response) {
	start := time.Now()
	endpoint := c.Route().Path

	if errs := x.Validate(data); len(errs) > 0 && errs[0].Error {
		errMsgs := make([]string, 0)
		for _, err := range errs {
			errMsgs = append(errMsgs, fmt.Sprintf(
				message,
				err.FailedField,
			))

			if x.metrics != nil {
				x.metrics.RecordValidationError(err.FailedField, err.Tag)
			}
		}
		errMess := strings.Join(errMsgs, sep)
		c.Status(http.StatusBadRequest)

		if x.metrics != nil {
			x.metrics.RecordValidationDuration(endpoint, time.Since(start))
		}

		return contract.Response{
			Code:    constants.ErrCodeValidationFailed,
			Message: errMess,
			TrackID: contract.TrackID(c),
		}
	}

	if x.metrics != nil {
		x.metrics.RecordValidationDuration(endpoint, time.Since(start))
	}

	return responseErr
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(errs, &fieldErrs) {
		return []Error{{Error: true, FailedField: "request", Tag: "struct"}}
	}

	for _, err := range fieldErrs {
		var elem Error
		elem.FailedField = err.Field()
		elem.Tag = err.Tag()
		elem.Value = err.Value()
		elem.Error = true
		validationErrors = append(validationErrors, elem)
	}
	return validationErrors
}
