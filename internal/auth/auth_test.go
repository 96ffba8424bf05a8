package auth

import (
	"testing"

	"xideaflow_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T, secret string) {
	t.Helper()
	prev := config.AppConfig

	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	t.Cleanup(func() { config.AppConfig = prev })
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t, "unit-test-secret")

	token, err := GenerateToken("user-42")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "user-42", claims.Subject)
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	setTestConfig(t, "secret-a")
	token, err := GenerateToken("user-42")
	require.NoError(t, err)

	setTestConfig(t, "secret-b")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	setTestConfig(t, "unit-test-secret")

	_, err := ParseToken("not.a.jwt")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPasswordHash("correct horse battery", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
}
