package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"xideaflow_backend/internal/models"
	"xideaflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscription_PublicPlanListing(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/subscriptions/plans", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Plans []models.SubscriptionPlan `json:"plans"`
		Count int                       `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &response))
	assert.Equal(t, 3, response.Count, "Free, Pro and Business are seeded")

	names := make(map[string]models.SubscriptionPlan)
	for _, p := range response.Plans {
		names[p.Name] = p
	}
	require.Contains(t, names, "Free")
	require.Contains(t, names, "Pro")
	require.Contains(t, names, "Business")

	assert.Equal(t, float64(0), names["Free"].Price)
	assert.Equal(t, 100, names["Pro"].CreditsIncluded)
	assert.NotEmpty(t, names["Business"].PlanServices, "Bindings are preloaded")
}

func TestSubscription_CurrentWithoutSubscription(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.RegisterUniqueUser(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/subscriptions/current", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSubscription_SubscribeActivatesPlan(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)

	var proPlan models.SubscriptionPlan
	require.NoError(t, tx.First(&proPlan, "name = ?", "Pro").Error)

	body := map[string]interface{}{"plan_id": proPlan.ID}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/subscriptions/subscribe", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var sub models.UserSubscription
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &sub))
	assert.True(t, sub.IsActive)
	assert.Equal(t, proPlan.ID, sub.PlanID)

	balance := helpers.GetBalance(t, tx, usr.ID)
	assert.Equal(t, 110, balance.TotalCredits, "10 bonus + 100 Pro grant")
	assert.Equal(t, models.PlanTypeSubscription, balance.PlanType)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/subscriptions/current", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"is_active":true`)
}

func TestSubscription_SubscribeReplacesActivePlan(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)

	var freePlan, proPlan models.SubscriptionPlan
	require.NoError(t, tx.First(&freePlan, "name = ?", "Free").Error)
	require.NoError(t, tx.First(&proPlan, "name = ?", "Pro").Error)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/subscriptions/subscribe", token,
		map[string]interface{}{"plan_id": freePlan.ID})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/subscriptions/subscribe", token,
		map[string]interface{}{"plan_id": proPlan.ID})
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var activeCount int64
	tx.Model(&models.UserSubscription{}).
		Where("user_id = ? AND is_active", usr.ID).Count(&activeCount)
	assert.EqualValues(t, 1, activeCount, "Only the newest subscription stays active")

	var active models.UserSubscription
	require.NoError(t, tx.First(&active, "user_id = ? AND is_active", usr.ID).Error)
	assert.Equal(t, proPlan.ID, active.PlanID)
}

func TestSubscription_SubscribeUnknownPlan(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.RegisterUniqueUser(t, ts, tx)

	body := map[string]interface{}{"plan_id": "00000000-0000-0000-0000-000000000000"}
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/subscriptions/subscribe", token, body)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSubscription_CheckoutRequiresProviderPlan(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.RegisterUniqueUser(t, ts, tx)

	// Free has no provider plan id, so no checkout can be built for it.
	var freePlan models.SubscriptionPlan
	require.NoError(t, tx.First(&freePlan, "name = ?", "Free").Error)

	body := map[string]interface{}{"plan_id": freePlan.ID}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/subscriptions/checkout", token, body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "not configured")
}

func TestSubscription_CancelDowngradesToFree(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Pro")

	// PlanType follows the subscription lifecycle.
	require.NoError(t, tx.Model(&models.UserCredit{}).
		Where("user_id = ?", usr.ID).
		Update("plan_type", models.PlanTypeSubscription).Error)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/subscriptions/cancel", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var sub models.UserSubscription
	require.NoError(t, tx.First(&sub, "user_id = ?", usr.ID).Error)
	assert.False(t, sub.IsActive)
	assert.False(t, sub.AutoRenew)

	balance := helpers.GetBalance(t, tx, usr.ID)
	assert.Equal(t, models.PlanTypeFree, balance.PlanType)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/subscriptions/current", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSubscription_ServiceAccessEndpoint(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Free")

	var headlineService models.Service
	require.NoError(t, tx.First(&headlineService, "name = ?", "ai_headline_generator").Error)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/services/"+headlineService.ID+"/access", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"has_access":true`)
	assert.Contains(t, bodyStr, `"limit":5`)

	var voiceService models.Service
	require.NoError(t, tx.First(&voiceService, "name = ?", "ai_voice_script_writer").Error)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/services/"+voiceService.ID+"/access", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"has_access":false`)
}

func TestServices_PublicCatalog(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/services", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "ai_headline_generator")
	assert.Contains(t, bodyStr, "content_scheduler")
}
