package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// RegisterUser registers through the API so the signup bonus and
// token pair are produced exactly as in production.
func RegisterUser(t *testing.T, ts *TestServer, tx *gorm.DB, name, email, password string) (string, dto.UserDTO) {
	body := map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Registration should succeed. Response: "+bodyStr)

	var authResponse dto.AuthResponse
	err := json.Unmarshal([]byte(bodyStr), &authResponse)
	require.NoError(t, err)
	require.NotEmpty(t, authResponse.AccessToken)

	return authResponse.AccessToken, authResponse.User
}

// RegisterUniqueUser registers a user with a collision-free email.
func RegisterUniqueUser(t *testing.T, ts *TestServer, tx *gorm.DB) (string, dto.UserDTO) {
	email := fmt.Sprintf("user_%d@test.com", time.Now().UnixNano())
	return RegisterUser(t, ts, tx, "Test User", email, "password123")
}

// SubscribeUser attaches an active subscription to a plan by name, with
// the plan's credit grant, the way the webhook flow would.
func SubscribeUser(t *testing.T, tx *gorm.DB, userID, planName string) *models.UserSubscription {
	var plan models.SubscriptionPlan
	err := tx.First(&plan, "name = ?", planName).Error
	require.NoError(t, err, "Plan %s must be seeded", planName)

	sub := &models.UserSubscription{
		UserID:    userID,
		PlanID:    plan.ID,
		StartDate: time.Now().UTC(),
		IsActive:  true,
		AutoRenew: true,
	}
	require.NoError(t, tx.Create(sub).Error)

	if plan.CreditsIncluded > 0 {
		err = tx.Model(&models.UserCredit{}).
			Where("user_id = ?", userID).
			Update("total_credits", gorm.Expr("total_credits + ?", plan.CreditsIncluded)).Error
		assert.NoError(t, err)
	}

	return sub
}

// GetBalance reads the credit account directly.
func GetBalance(t *testing.T, tx *gorm.DB, userID string) models.UserCredit {
	var credit models.UserCredit
	require.NoError(t, tx.First(&credit, "user_id = ?", userID).Error)
	return credit
}
