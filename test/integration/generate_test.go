package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/services/dto"
	"xideaflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_WithoutSubscriptionForbidden(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)

	body := map[string]interface{}{"topic": "remote work"}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/generate/headlines", token, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)

	balance := helpers.GetBalance(t, tx, usr.ID)
	assert.Equal(t, 0, balance.UsedCredits, "Blocked actions must not consume credits")
}

func TestGenerate_DeductsCreditsAndMetersUsage(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Business")

	body := map[string]interface{}{"topic": "remote work", "count": 3}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/generate/headlines", token, body)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result dto.GenerationResult
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	assert.Equal(t, 2, result.CreditsUsed)
	assert.Equal(t, "ai_headline_generator", result.Service)
	assert.True(t, result.Success)
	assert.Equal(t, "Content generated successfully", result.Message)

	balance := helpers.GetBalance(t, tx, usr.ID)
	assert.Equal(t, 2, balance.UsedCredits)
	assert.Equal(t, 510, balance.TotalCredits, "10 bonus + 500 Business grant")

	var logCount int64
	tx.Model(&models.CreditUsageLog{}).Where("user_id = ?", usr.ID).Count(&logCount)
	assert.EqualValues(t, 1, logCount)

	var usage models.UserServiceUsage
	require.NoError(t, tx.First(&usage, "user_id = ?", usr.ID).Error)
	assert.Equal(t, 1, usage.UsageCount)
}

func TestGenerate_FreePlanUsageLimit(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Free")

	// Free allows 3 hook generations per month at 2 credits each.
	body := map[string]interface{}{"topic": "growth hacking"}
	for i := 0; i < 3; i++ {
		res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/generate/hooks", token, body)
		require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/generate/hooks", token, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "Usage limit")

	balance := helpers.GetBalance(t, tx, usr.ID)
	assert.Equal(t, 6, balance.UsedCredits, "Only the three allowed runs were billed")
}

func TestGenerate_FreePlanServiceNotIncluded(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Free")

	// Voice scripts are not part of the Free plan.
	body := map[string]interface{}{"topic": "fitness", "duration_seconds": 60}
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/generate/voice-script", token, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestGenerate_InsufficientCredits(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Business")

	// Exhaust the balance: used == total leaves nothing available.
	require.NoError(t, tx.Model(&models.UserCredit{}).
		Where("user_id = ?", usr.ID).
		Update("used_credits", 510).Error)

	body := map[string]interface{}{"topic": "budget travel"}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/generate/headlines", token, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "Insufficient credits")

	var logCount int64
	tx.Model(&models.CreditUsageLog{}).Where("user_id = ?", usr.ID).Count(&logCount)
	assert.EqualValues(t, 0, logCount, "No usage log for a blocked action")
}
