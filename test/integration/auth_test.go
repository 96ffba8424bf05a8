package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"xideaflow_backend/internal/services/dto"
	"xideaflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterGrantsSignupBonus(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.RegisterUniqueUser(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/credits", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var balance dto.CreditBalance
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &balance))
	assert.Equal(t, 10, balance.TotalCredits, "Signup bonus should be granted once")
	assert.Equal(t, 0, balance.UsedCredits)
	assert.Equal(t, 10, balance.AvailableCredits)
	assert.Equal(t, user.ID, balance.UserID)
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.RegisterUniqueUser(t, ts, tx)

	body := map[string]interface{}{
		"name":     "Someone Else",
		"email":    user.Email,
		"password": "password123",
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)
}

func TestAuth_RegisterWeakPassword(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	body := map[string]interface{}{
		"name":     "Weak",
		"email":    "weak@test.com",
		"password": "short",
	}
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.RegisterUniqueUser(t, ts, tx)

	body := map[string]interface{}{
		"email":    user.Email,
		"password": "not-the-password",
	}
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAuth_RefreshRotatesToken(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	body := map[string]interface{}{
		"name":     "Refresher",
		"email":    "refresh@test.com",
		"password": "password123",
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var first dto.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &first))

	refreshBody := map[string]interface{}{"refresh_token": first.RefreshToken}
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/refresh", "", refreshBody)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var second dto.AuthResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &second))
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken, "Refresh token must rotate")

	// The consumed token cannot be replayed.
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/refresh", "", refreshBody)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAuth_MeRequiresToken(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	token, user := helpers.RegisterUniqueUser(t, ts, tx)
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, user.Email)
}
