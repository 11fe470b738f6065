package constants

const (
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeInvalidState         = "INVALID_STATE"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeInsufficientBalance  = "INSUFFICIENT_BALANCE"
	ErrCodeDuplicateApplication = "DUPLICATE_APPLICATION"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeAlreadyDecided       = "ALREADY_DECIDED"
	ErrCodeAlreadySubmitted     = "ALREADY_SUBMITTED"
	ErrCodeUnavailable          = "UNAVAILABLE"
	ErrCodeTooManyRequests      = "TOO_MANY_REQUESTS"
	ErrCodeInternalError        = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
)

const (
	ErrMsgNotFound             = "resource not found"
	ErrMsgInvalidState         = "operation not permitted in the current state"
	ErrMsgForbidden            = "not allowed to act on this resource"
	ErrMsgUnauthorized         = "missing or invalid credentials"
	ErrMsgInsufficientBalance  = "insufficient points balance"
	ErrMsgDuplicateApplication = "seller already applied to this order"
	ErrMsgValidationFailed     = "invalid input"
	ErrMsgAlreadyDecided       = "request has already been decided"
	ErrMsgAlreadySubmitted     = "work has already been submitted"
	ErrMsgUnavailable          = "service temporarily unavailable, retry later"
	ErrMsgTooManyRequests      = "too many requests"
	ErrMsgInternalError        = "Internal server error"
	ErrMsgInvalidRequestBody   = "failed to parse request body"
)

const MessageErrorFormat = "The '%s' format is invalid"

var errorMessages = map[string]string{
	ErrCodeNotFound:             ErrMsgNotFound,
	ErrCodeInvalidState:         ErrMsgInvalidState,
	ErrCodeForbidden:            ErrMsgForbidden,
	ErrCodeUnauthorized:         ErrMsgUnauthorized,
	ErrCodeInsufficientBalance:  ErrMsgInsufficientBalance,
	ErrCodeDuplicateApplication: ErrMsgDuplicateApplication,
	ErrCodeValidationFailed:     ErrMsgValidationFailed,
	ErrCodeAlreadyDecided:       ErrMsgAlreadyDecided,
	ErrCodeAlreadySubmitted:     ErrMsgAlreadySubmitted,
	ErrCodeUnavailable:          ErrMsgUnavailable,
	ErrCodeTooManyRequests:      ErrMsgTooManyRequests,
	ErrCodeInternalError:        ErrMsgInternalError,
	ErrCodeInvalidRequestBody:   ErrMsgInvalidRequestBody,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody, ErrCodeValidationFailed:
		return 400
	case ErrCodeUnauthorized:
		return 401
	case ErrCodeForbidden:
		return 403
	case ErrCodeNotFound:
		return 404
	case ErrCodeInsufficientBalance, ErrCodeDuplicateApplication, ErrCodeAlreadyDecided,
		ErrCodeAlreadySubmitted, ErrCodeInvalidState:
		return 409
	case ErrCodeTooManyRequests:
		return 429
	case ErrCodeUnavailable:
		return 503
	default:
		return 500
	}
}
