package models

import "fmt"

// Error codes used internally to classify failures. The wire format carries
// only the message, so these never leave the process; they exist for logging
// and for the handler's status-code mapping.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeTimeout      = "FETCH_TIMEOUT"
	ErrCodeTLS          = "TLS_FAILURE"
	ErrCodeConnection   = "CONNECTION_FAILED"
	ErrCodeHTTPStatus   = "HTTP_ERROR"
	ErrCodeFetch        = "FETCH_FAILED"
	ErrCodeParse        = "PARSE_FAILED"
	ErrCodeUnsupported  = "BUILDER_DETECTED"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// CheckError is the internal error type carrying an error code and the
// user-facing message. It implements the error interface and supports
// wrapping via Unwrap.
type CheckError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *CheckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// NewCheckError creates a new CheckError.
func NewCheckError(code, message string, err error) *CheckError {
	return &CheckError{Code: code, Message: message, Err: err}
}
