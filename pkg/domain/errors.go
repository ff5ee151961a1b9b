package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeCredentialMissing = "CREDENTIAL_MISSING"
	ErrCodeCredentialInvalid = "CREDENTIAL_INVALID"
	ErrCodeQuotaExhausted    = "QUOTA_EXHAUSTED"
	ErrCodeUpstream          = "UPSTREAM_UNAVAILABLE"
	ErrCodeMalformedPayload  = "MALFORMED_UPSTREAM_PAYLOAD"
	ErrCodeConfiguration     = "CONFIGURATION_ERROR"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// Error constructors

// NewCredentialMissingError is returned when no card key was supplied
func NewCredentialMissingError() error {
	return &DomainError{
		Code:    ErrCodeCredentialMissing,
		Message: "card key is required",
	}
}

// NewCredentialInvalidError is returned when the card key was never issued
// or does not match the shared secret
func NewCredentialInvalidError() error {
	return &DomainError{
		Code:    ErrCodeCredentialInvalid,
		Message: "card key is not valid",
	}
}

// NewQuotaExhaustedError is returned when a card key has no uses left
func NewQuotaExhaustedError() error {
	return &DomainError{
		Code:    ErrCodeQuotaExhausted,
		Message: "card key has no remaining uses",
	}
}

// NewUpstreamError wraps a transport failure or non-2xx response from the model provider
func NewUpstreamError(err error) error {
	return &DomainError{
		Code:    ErrCodeUpstream,
		Message: "model provider request failed",
		Err:     err,
	}
}

// NewMalformedPayloadError is returned when the model output cannot be used
func NewMalformedPayloadError(msg string, err error) error {
	return &DomainError{
		Code:    ErrCodeMalformedPayload,
		Message: msg,
		Err:     err,
	}
}

// NewConfigurationError reports a missing or invalid server setting
func NewConfigurationError(msg string) error {
	return &DomainError{
		Code:    ErrCodeConfiguration,
		Message: msg,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(msg string) error {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(err error) error {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// Helper functions to check error types

func hasCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// IsCredentialMissing checks if the error is a missing credential error
func IsCredentialMissing(err error) bool { return hasCode(err, ErrCodeCredentialMissing) }

// IsCredentialInvalid checks if the error is an invalid credential error
func IsCredentialInvalid(err error) bool { return hasCode(err, ErrCodeCredentialInvalid) }

// IsQuotaExhausted checks if the error is a quota exhausted error
func IsQuotaExhausted(err error) bool { return hasCode(err, ErrCodeQuotaExhausted) }

// IsUpstream checks if the error is an upstream provider error
func IsUpstream(err error) bool { return hasCode(err, ErrCodeUpstream) }

// IsMalformedPayload checks if the error is a malformed upstream payload error
func IsMalformedPayload(err error) bool { return hasCode(err, ErrCodeMalformedPayload) }

// IsConfiguration checks if the error is a configuration error
func IsConfiguration(err error) bool { return hasCode(err, ErrCodeConfiguration) }

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// GetErrorCode extracts the error code from a domain error
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}
