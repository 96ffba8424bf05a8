package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_MarshalHidesInternals(t *testing.T) {
	err := Wrap(errors.New("pq: connection refused"), CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	assert.NotContains(t, string(data), "connection refused")
	assert.NotContains(t, string(data), "500")
	assert.Contains(t, string(data), `"code":"INTERNAL_ERROR"`)
}

func TestAppError_UnwrapChain(t *testing.T) {
	cause := errors.New("row not found")
	appErr := ErrNotFound(cause)

	assert.True(t, Is(appErr, cause))

	var target *AppError
	assert.True(t, As(appErr, &target))
	assert.Equal(t, http.StatusNotFound, target.HTTPCode)
}

func TestAppError_WithDetails(t *testing.T) {
	err := ErrInsufficientCredits.WithDetails("Required: 5, Available: 2")
	assert.Equal(t, http.StatusForbidden, err.HTTPCode)
	assert.Equal(t, "Required: 5, Available: 2", err.Details)
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(ErrInvalidCredentials)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
