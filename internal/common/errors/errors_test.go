package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func TestNormalize(t *testing.T) {
	stdErr := NewAPIRequestError("list_vendors", "Failed to fetch vendors", errors.New("HTTP 500"))
	wrapped := fmt.Errorf("load: %w", stdErr)
	assert.Same(t, stdErr, Normalize(wrapped))

	plain := Normalize(errors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
	assert.EqualError(t, errors.Unwrap(plain), "boom")
}

func TestValidationHelpers(t *testing.T) {
	err := fmt.Errorf("create: %w", NewValidationError("vendor form rejected", map[string]string{
		"email": "Invalid email address.",
	}))
	assert.True(t, IsValidation(err))
	assert.Equal(t, map[string]string{"email": "Invalid email address."}, FieldErrors(err))

	apiErr := NewAPIRequestError("create_vendor", "Failed to create vendor", errors.New("HTTP 400"))
	assert.False(t, IsValidation(apiErr))
	assert.Nil(t, FieldErrors(apiErr))
	assert.Nil(t, FieldErrors(nil))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrCodeValidationFailed, "VALIDATION"},
		{ErrCodeAPIRequestFailed, "API"},
		{ErrCodeAPIUnavailable, "API"},
		{ErrCodeSessionStoreFailed, "SESSION"},
		{ErrCodeConfigInvalid, "CONFIG"},
		{ErrCodeInternal, "OTHER"},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCategory(tt.code))
		})
	}
}

func TestStandardError_Error(t *testing.T) {
	err := NewSessionStoreError("load", errors.New("connection refused"))
	assert.Equal(t, "StandardError[SESSION_STORE_FAILED]: Session store operation failed", err.Error())
	assert.Contains(t, err.Details, "connection refused")
}

func TestErrorHandler_HandleActionError(t *testing.T) {
	t.Run("api failure logs error and returns alert", func(t *testing.T) {
		log := new(MockLogger)
		log.On("Error", "Action failed", mock.MatchedBy(func(f map[string]interface{}) bool {
			return f["view"] == "vendor-manager" && f["action"] == "create" && f["errorCode"] == "API_REQUEST_FAILED"
		})).Once()

		alert := NewErrorHandler(log).HandleActionError("vendor-manager", "create",
			NewAPIRequestError("create_vendor", "Failed to create vendor", errors.New("HTTP 400")))
		assert.Equal(t, "Failed to create vendor", alert)
		log.AssertExpectations(t)
	})

	t.Run("validation failure logs warn", func(t *testing.T) {
		log := new(MockLogger)
		log.On("Warn", "Action rejected", mock.Anything).Once()

		alert := NewErrorHandler(log).HandleActionError("rfp-form", "generate",
			NewValidationError("too short", map[string]string{"natural_language": "x"}))
		assert.Equal(t, "Form validation failed", alert)
		log.AssertExpectations(t)
		log.AssertNotCalled(t, "Error", mock.Anything, mock.Anything)
	})

	t.Run("nil error", func(t *testing.T) {
		log := new(MockLogger)
		require.Empty(t, NewErrorHandler(log).HandleActionError("v", "a", nil))
		log.AssertNotCalled(t, "Error", mock.Anything, mock.Anything)
	})
}
