package integration_test

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"log"
	"net/url"
	"os"
	"sync"
	"testing"

	"xideaflow_backend/internal/services"
	"xideaflow_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once

	// Key pair for signing simulated Paddle webhooks.
	webhookKey *rsa.PrivateKey
)

// GetTestServer initializes the shared server on first use. Tests are
// skipped when no test database is configured.
func GetTestServer(t *testing.T) *helpers.TestServer {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL / DATABASE_URL not set, skipping integration tests")
	}

	serverOnce.Do(func() {
		os.Setenv("DATABASE_URL", dsn)
		os.Setenv("SERVER_ENV", "test")
		os.Setenv("JWT_SECRET", "integration-test-secret")

		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			log.Fatalf("Failed to generate webhook test key: %v", err)
		}
		webhookKey = key

		pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		if err != nil {
			log.Fatalf("Failed to marshal webhook public key: %v", err)
		}
		pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
		os.Setenv("PADDLE_PUBLIC_KEY", string(pubPEM))

		globalTestServer = helpers.NewTestServer(t)
	})
	return globalTestServer
}

// SignWebhookForm signs form the way Paddle classic does: RSA-SHA1
// over the sorted key=value serialization.
func SignWebhookForm(t *testing.T, form url.Values) {
	hashed := sha1.Sum([]byte(services.SerializeWebhookFields(form)))
	sig, err := rsa.SignPKCS1v15(rand.Reader, webhookKey, crypto.SHA1, hashed[:])
	if err != nil {
		t.Fatalf("Failed to sign webhook form: %v", err)
	}
	form.Set("p_signature", base64.StdEncoding.EncodeToString(sig))
}

func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		globalTestServer.Close()
	}

	os.Exit(code)
}
