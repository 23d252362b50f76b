package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"unauthorized", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrCodeForbidden, http.StatusForbidden},
		{"conflict", ErrCodeConflict, http.StatusConflict},
		{"concurrency conflict", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"invalid state", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"business rule", ErrCodeBusinessRule, http.StatusUnprocessableEntity},
		{"reason required", ErrCodeReasonRequired, http.StatusUnprocessableEntity},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"unknown code falls back to 500", "ERR_SOMETHING_NEW", http.StatusInternalServerError},
		{"empty code falls back to 500", "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"domain not found", "NOT_FOUND", ErrCodeNotFound},
		{"domain concurrency conflict", "CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"domain reason required", "REASON_REQUIRED", ErrCodeReasonRequired},
		{"domain invalid transition maps to invalid state", "INVALID_TRANSITION", ErrCodeInvalidState},
		{"already normalized", ErrCodeNotFound, ErrCodeNotFound},
		{"unknown passes through", "SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestErrorCodeHTTPStatusCoversAllCodes(t *testing.T) {
	// every code the legacy mapping can produce must have a status
	for legacy, code := range LegacyErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[code]
		assert.True(t, ok, "legacy code %s maps to %s which has no HTTP status", legacy, code)
	}
}

func TestNewReasonRequiredResponse(t *testing.T) {
	resp := NewReasonRequiredResponse("a reason is required to change rate on a delivered load", "req-123", []string{"rate"})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeReasonRequired, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Equal(t, []string{"rate"}, resp.Error.Fields)
}
