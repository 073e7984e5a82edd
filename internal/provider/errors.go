package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common provider failures.
var (
	// ErrCredentialsExhausted means every credential of the active
	// provider hit its quota.
	ErrCredentialsExhausted = errors.New("credentials exhausted")

	// ErrNoCredential means the active provider has no credential at all.
	ErrNoCredential = errors.New("no credential configured")

	// ErrEmptyResponse is returned when a backend answers without any
	// candidate message.
	ErrEmptyResponse = errors.New("empty response")
)

// ErrorCode represents a provider error code.
type ErrorCode string

const (
	ErrorCodeContextLength  ErrorCode = "context_length_exceeded"
	ErrorCodeContentBlocked ErrorCode = "content_blocked"
	ErrorCodeRateLimit      ErrorCode = "rate_limit"
	ErrorCodeQuota          ErrorCode = "quota_exceeded"
	ErrorCodeAuth           ErrorCode = "authentication_failed"
	ErrorCodePermission     ErrorCode = "permission_denied"
	ErrorCodeNetwork        ErrorCode = "network_error"
	ErrorCodeTimeout        ErrorCode = "timeout"
	ErrorCodeUnavailable    ErrorCode = "service_unavailable"
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"
	ErrorCodeToolUseFailed  ErrorCode = "tool_use_failed"
)

// Error wraps backend errors with a code the Client and the agent loop
// can branch on.
type Error struct {
	Code       ErrorCode
	Message    string
	Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// ErrorFromStatus maps an HTTP status to a provider Error. Quota and
// context-window failures are recognised by their message too, since
// providers report them under several statuses (Groq uses 413 for a
// tokens-per-minute limit).
func ErrorFromStatus(status int, message string, underlying error) *Error {
	e := &Error{Message: message, Underlying: underlying}
	lower := strings.ToLower(message)
	switch {
	case status == 429 || containsAny(lower, rateLimitSignatures):
		e.Code = ErrorCodeRateLimit
	case containsAny(lower, quotaSignatures):
		e.Code = ErrorCodeQuota
	case containsAny(lower, contextLengthSignatures):
		e.Code = ErrorCodeContextLength
	case status == 401:
		e.Code = ErrorCodeAuth
	case status == 403:
		e.Code = ErrorCodePermission
	case status == 400 && isToolUseMessage(message):
		e.Code = ErrorCodeToolUseFailed
	case status == 400 || status == 404 || status == 413 || status == 422:
		e.Code = ErrorCodeInvalidRequest
	case status == 408 || status == 504:
		e.Code = ErrorCodeTimeout
	case status >= 500:
		e.Code = ErrorCodeUnavailable
	default:
		e.Code = ErrorCodeNetwork
	}
	return e
}

var (
	rateLimitSignatures     = []string{"rate_limit", "rate limit", "resource_exhausted"}
	quotaSignatures         = []string{"insufficient_quota", "exceeded your current quota"}
	contextLengthSignatures = []string{"context_length_exceeded", "context length", "context window"}
)

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// IsQuotaExhausted reports whether err means the current credential hit
// its rate limit or quota. Typed errors are judged by code alone; other
// errors by their text.
func IsQuotaExhausted(err error) bool {
	if err == nil {
		return false
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == ErrorCodeRateLimit || pe.Code == ErrorCodeQuota
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || containsAny(msg, rateLimitSignatures) || containsAny(msg, quotaSignatures)
}

// IsToolUseFailure reports whether err means the model produced a
// malformed function call.
func IsToolUseFailure(err error) bool {
	if err == nil {
		return false
	}
	var pe *Error
	if errors.As(err, &pe) && pe.Code == ErrorCodeToolUseFailed {
		return true
	}
	return isToolUseMessage(err.Error())
}

func isToolUseMessage(msg string) bool {
	return strings.Contains(msg, "tool_use_failed") || strings.Contains(msg, "Failed to call a function")
}
