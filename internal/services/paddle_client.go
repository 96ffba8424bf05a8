package services

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"xideaflow_backend/internal/config"
	"xideaflow_backend/internal/logger"
)

const (
	paddleAPIBaseURL        = "https://vendors.paddle.com/api"
	paddleSandboxAPIBaseURL = "https://sandbox-vendors.paddle.com/api"
)

// PassthroughPayload travels through the provider checkout and comes
// back verbatim in webhook events. It is the only link between a
// provider order and our records.
type PassthroughPayload struct {
	UserID        string `json:"user_id"`
	Credits       int    `json:"credits,omitempty"`
	PlanID        string `json:"plan_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type PayLinkRequest struct {
	Title       string
	Price       float64
	Email       string
	Passthrough PassthroughPayload
}

// PaddleClient talks to the Paddle classic vendor API and verifies
// webhook signatures. The classic form API has no maintained Go SDK,
// so requests are plain url-encoded POSTs.
type PaddleClient struct {
	vendorID    string
	apiKey      string
	publicKey   *rsa.PublicKey
	baseURL     string
	frontendURL string
	httpClient  *http.Client
}

func NewPaddleClient(cfg *config.Config) *PaddleClient {
	baseURL := paddleAPIBaseURL
	if cfg.Paddle.Sandbox {
		baseURL = paddleSandboxAPIBaseURL
	}

	client := &PaddleClient{
		vendorID:    cfg.Paddle.VendorID,
		apiKey:      cfg.Paddle.APIKey,
		baseURL:     baseURL,
		frontendURL: strings.TrimRight(cfg.Frontend.URL, "/"),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}

	if cfg.Paddle.PublicKey != "" {
		key, err := parseRSAPublicKey(cfg.Paddle.PublicKey)
		if err != nil {
			logger.Error("Failed to parse Paddle public key, webhook verification disabled", "error", err)
		} else {
			client.publicKey = key
		}
	} else {
		logger.Warn("PADDLE_PUBLIC_KEY is not configured, webhook verification disabled")
	}

	return client
}

func parseRSAPublicKey(pemStr string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not RSA")
	}
	return rsaKey, nil
}

// VerifyWebhookSignature checks the RSA-SHA1 signature over the
// alphabetically key-sorted "key=value" serialization of every field
// except p_signature. A missing key or malformed signature fails
// closed.
func (c *PaddleClient) VerifyWebhookSignature(form url.Values) bool {
	if c.publicKey == nil {
		return false
	}

	sigB64 := form.Get("p_signature")
	if sigB64 == "" {
		return false
	}

	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		return false
	}

	hashed := sha1.Sum([]byte(SerializeWebhookFields(form)))
	return rsa.VerifyPKCS1v15(c.publicKey, crypto.SHA1, hashed[:], sig) == nil
}

// SerializeWebhookFields builds the canonical signing payload.
func SerializeWebhookFields(form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		if k != "p_signature" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(form.Get(k))
	}
	return b.String()
}

type payLinkResponse struct {
	Success  bool `json:"success"`
	Response struct {
		URL string `json:"url"`
	} `json:"response"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeneratePayLink creates a provider-hosted checkout page and returns
// its URL.
func (c *PaddleClient) GeneratePayLink(req PayLinkRequest) (string, error) {
	passthrough, err := json.Marshal(req.Passthrough)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("vendor_id", c.vendorID)
	form.Set("vendor_auth_code", c.apiKey)
	form.Set("title", req.Title)
	form.Set("prices[0]", fmt.Sprintf("USD:%.2f", req.Price))
	form.Set("customer_email", req.Email)
	form.Set("passthrough", string(passthrough))
	form.Set("quantity_variable", "0")
	form.Set("return_url", c.frontendURL+"/credits?purchase=success")

	var resp payLinkResponse
	if err := c.post("/2.0/product/generate_pay_link", form, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("paddle generate_pay_link failed: %s", resp.Error.Message)
	}

	return resp.Response.URL, nil
}

// GenerateSubscriptionPayLink creates a checkout page for a recurring
// plan. The price comes from the provider-side plan, so only the plan
// id, buyer email and passthrough travel with the request.
func (c *PaddleClient) GenerateSubscriptionPayLink(paddlePlanID, email string, passthrough PassthroughPayload) (string, error) {
	payload, err := json.Marshal(passthrough)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("vendor_id", c.vendorID)
	form.Set("vendor_auth_code", c.apiKey)
	form.Set("product_id", paddlePlanID)
	form.Set("customer_email", email)
	form.Set("passthrough", string(payload))
	form.Set("return_url", c.frontendURL+"/subscription?checkout=success")

	var resp payLinkResponse
	if err := c.post("/2.0/product/generate_pay_link", form, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("paddle generate_pay_link failed: %s", resp.Error.Message)
	}

	return resp.Response.URL, nil
}

type apiResponse struct {
	Success bool `json:"success"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CancelSubscription cancels a subscription on the provider side.
func (c *PaddleClient) CancelSubscription(paddleSubID string) error {
	form := url.Values{}
	form.Set("vendor_id", c.vendorID)
	form.Set("vendor_auth_code", c.apiKey)
	form.Set("subscription_id", paddleSubID)

	var resp apiResponse
	if err := c.post("/2.0/subscription/users_cancel", form, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("paddle users_cancel failed: %s", resp.Error.Message)
	}
	return nil
}

func (c *PaddleClient) post(path string, form url.Values, out interface{}) error {
	resp, err := c.httpClient.PostForm(c.baseURL+path, form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("paddle API returned status %d", resp.StatusCode)
	}

	return json.Unmarshal(body, out)
}
