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

func TestMarketplace_BrowseIsPublic(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/marketplace/prompts", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response dto.MarketplaceResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &response))
	assert.Equal(t, 5, response.Total)
	assert.Equal(t, 5, response.Count)
}

func TestMarketplace_BrowseFilters(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/marketplace/prompts?category=CONTENT_CREATION", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response dto.MarketplaceResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &response))
	assert.Equal(t, 2, response.Total)
	for _, p := range response.Prompts {
		assert.Equal(t, "CONTENT_CREATION", p.Category)
	}

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/marketplace/prompts?search=email&limit=1", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &response))
	assert.Equal(t, 1, response.Count)
	assert.GreaterOrEqual(t, response.Total, 1)
}

func TestMarketplace_UsePromptSubstitutesVariables(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Business")

	body := map[string]interface{}{
		"prompt_id": "social-post-creator",
		"variables": map[string]string{
			"topic":    "coffee subscriptions",
			"platform": "Instagram",
		},
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/marketplace/prompts/use", token, body)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var response dto.PromptUsageResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &response))
	assert.Contains(t, response.Content, "coffee subscriptions")
	assert.Contains(t, response.Content, "Instagram")
	assert.NotContains(t, response.Content, "[TOPIC]")
	assert.NotContains(t, response.Content, "[TONE]", "Unfilled placeholders get defaults")
	assert.Equal(t, 1, response.CreditsUsed)

	balance := helpers.GetBalance(t, tx, usr.ID)
	assert.Equal(t, 1, balance.UsedCredits)
}

func TestMarketplace_UseUnknownPrompt(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Business")

	body := map[string]interface{}{"prompt_id": "does-not-exist"}
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/marketplace/prompts/use", token, body)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
