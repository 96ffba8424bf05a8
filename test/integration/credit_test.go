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

func TestCredits_CheckAvailability(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.RegisterUniqueUser(t, ts, tx)

	// 10 bonus credits: 5 is affordable, 50 is not.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/credits/check?required=5", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var check dto.CreditCheck
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &check))
	assert.True(t, check.HasEnoughCredits)
	assert.Equal(t, 10, check.AvailableCredits)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/credits/check?required=50", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &check))
	assert.False(t, check.HasEnoughCredits)
	assert.NotEmpty(t, check.Message)
}

func TestCredits_PurchaseValidation(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.RegisterUniqueUser(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/credits/purchase", token, map[string]interface{}{
		"credits": 0,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/credits/purchase", token, map[string]interface{}{
		"credits": 20000,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCredits_HistoryListsSignup(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.RegisterUniqueUser(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/credits/history", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var history dto.CreditHistory
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &history))
	assert.Empty(t, history.UsageLogs, "A fresh user has no usage yet")
}

func TestCredits_RequiresAuth(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/credits", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
