package handler

import "net/http"

// Error codes returned in the envelope's error.code field.
const (
	CodeRateLimitExceeded   = "RATE_LIMIT_EXCEEDED"
	CodeMissingImage        = "MISSING_IMAGE"
	CodeMissingImageData    = "MISSING_IMAGE_DATA"
	CodeInvalidImageFormat  = "INVALID_IMAGE_FORMAT"
	CodeUploadFailed        = "UPLOAD_FAILED"
	CodeMissingAPIToken     = "MISSING_API_TOKEN"
	CodeProviderBadResponse = "REPLICATE_INVALID_RESPONSE"
	CodeProviderRejected    = "REPLICATE_CREATE_FAILED"
	CodeGenerationTimeout   = "GENERATION_TIMEOUT"
	CodeGenerationEmpty     = "GENERATION_EMPTY_RESULT"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeEmailSendFailed     = "EMAIL_SEND_FAILED"
	CodeCardNotFound        = "CARD_NOT_FOUND"
	CodeComposeFailed       = "COMPOSE_FAILED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Error is an API error carrying the HTTP status and envelope code alongside
// the client-facing message. It wraps the underlying cause for logging while
// keeping it out of the response body.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string][]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NewError creates an API error with the given status, code and message.
func NewError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// WithCause attaches the underlying error without exposing it to clients.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.cause = cause
	return &clone
}

// NewValidationError creates a 400 validation error with per-field messages.
func NewValidationError(details map[string][]string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeValidationFailed,
		Message: "request validation failed",
		Details: details,
	}
}
