// File: internal/services/gemini/errors.go
package gemini

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"     // missing credential, fatal
	ErrTypeValidation ErrorType = "VALIDATION" // malformed request payload
	ErrTypeRateLimit  ErrorType = "RATE_LIMIT" // local limiter rejection
	ErrTypeQuota      ErrorType = "QUOTA"      // upstream 429
	ErrTypeTimeout    ErrorType = "TIMEOUT"    // 45s abort tripped
	ErrTypeNetwork    ErrorType = "NETWORK"    // transport failure
	ErrTypeUpstream   ErrorType = "UPSTREAM"   // upstream non-success status
	ErrTypeShape      ErrorType = "SHAPE"      // 200 without the expected text field
)

// GeminiError classifies every failure the proxy can produce so the retry
// executor and the HTTP boundary can decide without string matching.
type GeminiError struct {
	Type      ErrorType
	Code      int // upstream HTTP status when applicable
	Message   string
	Operation string
	Cause     error
}

func (e *GeminiError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Gemini %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Gemini %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *GeminiError) Unwrap() error {
	return e.Cause
}

func NewConfigError(msg string) *GeminiError {
	return &GeminiError{Type: ErrTypeConfig, Operation: "config", Message: msg}
}

func NewValidationError(msg string) *GeminiError {
	return &GeminiError{Type: ErrTypeValidation, Operation: "request", Message: msg}
}

func NewRateLimitError(msg string) *GeminiError {
	return &GeminiError{Type: ErrTypeRateLimit, Operation: "ratelimit", Message: msg}
}

func NewQuotaError(upstream string) *GeminiError {
	return &GeminiError{
		Type:      ErrTypeQuota,
		Code:      429,
		Operation: "generate",
		Message:   "La IA esta temporalmente sin cupo. Intenta mas tarde.",
		Cause:     errors.New(upstream),
	}
}

func NewTimeoutError(cause error) *GeminiError {
	return &GeminiError{
		Type:      ErrTypeTimeout,
		Operation: "generate",
		Message:   "La conexión tardó demasiado. Por favor intenta de nuevo.",
		Cause:     cause,
	}
}

func NewNetworkError(msg string, cause error) *GeminiError {
	return &GeminiError{Type: ErrTypeNetwork, Operation: "generate", Message: msg, Cause: cause}
}

func NewUpstreamError(code int, msg string) *GeminiError {
	return &GeminiError{Type: ErrTypeUpstream, Code: code, Operation: "generate", Message: msg}
}

func NewShapeError(msg string) *GeminiError {
	return &GeminiError{Type: ErrTypeShape, Code: 502, Operation: "generate", Message: msg}
}

// IsRetryable reports whether a failed call may be attempted again.
// Credential, validation, rate-limit, quota and shape failures never
// recover by retrying; transport failures and upstream 5xx might.
func IsRetryable(err error) bool {
	var ge *GeminiError
	if !errors.As(err, &ge) {
		// Unclassified failures are assumed transient.
		return true
	}
	switch ge.Type {
	case ErrTypeTimeout, ErrTypeNetwork:
		return true
	case ErrTypeUpstream:
		return ge.Code >= 500
	default:
		return false
	}
}

// ErrorType extraction for handlers; returns ErrTypeUpstream for
// unclassified errors.
func TypeOf(err error) ErrorType {
	var ge *GeminiError
	if errors.As(err, &ge) {
		return ge.Type
	}
	return ErrTypeUpstream
}
