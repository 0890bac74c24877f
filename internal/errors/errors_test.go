package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError(t *testing.T) {
	err := ViewNotFound("regional")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, CodeViewNotFound, err.ErrorCode)
	assert.Contains(t, err.Error(), "regional")

	var target *APIError
	assert.True(t, stderrors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, CodeViewNotFound, target.ErrorCode)
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "limit", Message: "must be at most 5000"},
		{Field: "offset", Message: "must be at least 0"},
	})
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	details, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, details.Errors, 2)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrRateLimitExceeded)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, CodeRateLimitExceeded, resp.Error.ErrorCode)
}

func TestAppError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewExportError("write views.xlsx", cause).WithContext("view", "global")

	assert.Equal(t, "[EXPORT] write views.xlsx: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "global", err.Context["view"])

	var nilCtx AppError
	nilCtx.WithContext("k", 1)
	assert.Equal(t, 1, nilCtx.Context["k"])

	assert.Equal(t, "[NOT_FOUND] chart x not found", NewNotFoundError("chart x").Error())
}
