package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"xideaflow_backend/internal/models"
	"xideaflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleBody(at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"content":      "Launch day is here!",
		"platform":     "TWITTER",
		"scheduled_at": at.Format(time.RFC3339),
	}
}

func TestScheduler_ScheduleAndList(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Business")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/content/schedule", token,
		scheduleBody(time.Now().Add(24*time.Hour)))
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var content models.ScheduledContent
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &content))
	assert.Equal(t, models.ContentStatusScheduled, content.Status)
	assert.Equal(t, usr.ID, content.UserID)

	// Scheduling is free but still metered.
	balance := helpers.GetBalance(t, tx, usr.ID)
	assert.Equal(t, 0, balance.UsedCredits)

	var usage models.UserServiceUsage
	require.NoError(t, tx.First(&usage, "user_id = ?", usr.ID).Error)
	assert.Equal(t, 1, usage.UsageCount)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/content/scheduled", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":1`)
}

func TestScheduler_RejectsPastTime(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Business")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/content/schedule", token,
		scheduleBody(time.Now().Add(-time.Hour)))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "future")
}

func TestScheduler_UpdateAndCancel(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, usr := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, usr.ID, "Business")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/content/schedule", token,
		scheduleBody(time.Now().Add(24*time.Hour)))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var content models.ScheduledContent
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &content))

	newText := "Updated announcement"
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/content/scheduled/"+content.ID, token,
		map[string]interface{}{"content": newText})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, newText)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/content/scheduled/"+content.ID+"/cancel", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, string(models.ContentStatusCancelled))

	// Cancelled content is frozen.
	res, _ = ts.SendRequest(t, tx, http.MethodPatch, "/api/v1/content/scheduled/"+content.ID, token,
		map[string]interface{}{"content": "too late"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestScheduler_ContentIsUserScoped(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.RegisterUniqueUser(t, ts, tx)
	helpers.SubscribeUser(t, tx, owner.ID, "Business")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/content/schedule", ownerToken,
		scheduleBody(time.Now().Add(24*time.Hour)))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var content models.ScheduledContent
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &content))

	strangerToken, _ := helpers.RegisterUniqueUser(t, ts, tx)
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/content/scheduled/"+content.ID, strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
