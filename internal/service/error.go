package service

import (
	"errors"

	"github.com/YJ-0220/product-sub000/internal/constants"
	"github.com/YJ-0220/product-sub000/internal/repository"
)

const ErrCodeDatabase = "DATABASE_ERROR"

var (
	ErrInvalidAmount          = errors.New("INVALID_AMOUNT")
	ErrInvalidDecision        = errors.New("INVALID_DECISION")
	ErrInvalidOrderStatus     = errors.New("INVALID_ORDER_STATUS")
	ErrMissingField           = errors.New("MISSING_FIELD")
	ErrInsufficientFunds      = errors.New("INSUFFICIENT_FUNDS")
	ErrRequestAlreadyDecided  = errors.New("REQUEST_ALREADY_DECIDED")
	ErrAdminOnly              = errors.New("ADMIN_ONLY")
	ErrNotApplicationOwner    = errors.New("NOT_APPLICATION_OWNER")
	ErrNotOrderBuyer          = errors.New("NOT_ORDER_BUYER")
	ErrOrderNotAccepting      = errors.New("ORDER_NOT_ACCEPTING_APPLICATIONS")
	ErrApplicationNotPending  = errors.New("APPLICATION_NOT_PENDING")
	ErrApplicationNotAccepted = errors.New("APPLICATION_NOT_ACCEPTED")
	ErrOrderAlreadyAssigned   = errors.New("ORDER_ALREADY_HAS_ACCEPTED_APPLICATION")
	ErrNoAcceptedApplication  = errors.New("NO_ACCEPTED_APPLICATION")
	ErrWorkItemNotSubmitted   = errors.New("WORK_ITEM_NOT_SUBMITTED")
	ErrWorkAlreadySubmitted   = errors.New("WORK_ALREADY_SUBMITTED")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

// fromTxError normalizes what a unit of work returned: typed failures pass
// through, exhausted storage retries become UNAVAILABLE, the rest DATABASE_ERROR.
func fromTxError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrTxUnavailable) {
		return NewServiceError(constants.ErrCodeUnavailable, err)
	}

	var serviceErr Error
	if errors.As(err, &serviceErr) {
		return serviceErr
	}

	return NewServiceError(ErrCodeDatabase, err)
}

func notFound(cause error) error {
	return NewServiceError(constants.ErrCodeNotFound, cause)
}

func invalidInput(cause error) error {
	return NewServiceError(constants.ErrCodeValidationFailed, cause)
}

func invalidState(cause error) error {
	return NewServiceError(constants.ErrCodeInvalidState, cause)
}

func forbidden(cause error) error {
	return NewServiceError(constants.ErrCodeForbidden, cause)
}

func dbError(err error) error {
	return NewServiceError(ErrCodeDatabase, err)
}
