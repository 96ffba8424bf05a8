package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Period   string `json:"period" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
	Amount   int    `json:"amount" validate:"omitempty,gt=0"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{
		Email:    "user@example.com",
		Password: "supersecret",
		Period:   "MONTHLY",
		Amount:   5,
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be at least 8 items/characters long", vErr.Errors["password"])
	assert.NotContains(t, vErr.Errors, "Email", "Go field names never leak to clients")
}

func TestValidate_OneofAndGtMessages(t *testing.T) {
	v := New()

	err := v.Validate(sampleRequest{
		Email:    "user@example.com",
		Password: "supersecret",
		Period:   "HOURLY",
		Amount:   -1,
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	assert.Equal(t, "Must be one of: DAILY, WEEKLY, MONTHLY", vErr.Errors["period"])
	assert.Equal(t, "Must be greater than 0", vErr.Errors["amount"])
}

func TestValidationError_ErrorString(t *testing.T) {
	vErr := &ValidationError{Errors: map[string]string{"email": "This field is required"}}
	assert.Contains(t, vErr.Error(), "field 'email': This field is required")
}
