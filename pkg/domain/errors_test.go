package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	err := NewQuotaExhaustedError()
	assert.Equal(t, "QUOTA_EXHAUSTED: card key has no remaining uses", err.Error())

	wrapped := NewUpstreamError(errors.New("connection reset"))
	assert.Equal(t, "UPSTREAM_UNAVAILABLE: model provider request failed: connection reset", wrapped.Error())
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewMalformedPayloadError("bad json", cause)
	assert.ErrorIs(t, err, cause)
}

func TestIsHelpers_SeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("authorize: %w", NewCredentialInvalidError())

	assert.True(t, IsCredentialInvalid(err))
	assert.False(t, IsCredentialMissing(err))
	assert.False(t, IsQuotaExhausted(err))
	assert.Equal(t, ErrCodeCredentialInvalid, GetErrorCode(err))
}

func TestGetErrorCode_NonDomainError(t *testing.T) {
	assert.Equal(t, ErrCodeInternal, GetErrorCode(errors.New("plain")))
}
