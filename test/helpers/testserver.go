package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"xideaflow_backend/internal/app"
	"xideaflow_backend/internal/config"
	"xideaflow_backend/internal/seeder"
	"xideaflow_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer holds the router and DB shared by integration tests. Each
// test runs inside its own transaction: SendRequest injects the tx into
// the request context, where DBMiddleware picks it up instead of the
// pool, and the rollback at the end of the test erases everything.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func NewTestServer(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	config.LoadConfig()
	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test DB (%s): %v", cfg.Database.DSN, err)
	}

	if err := app.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}
	if err := seeder.Seed(db); err != nil {
		t.Fatalf("Failed to seed test DB: %v", err)
	}

	return &TestServer{
		Router: app.SetupRouter(cfg, db),
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("Failed to begin transaction: %v", tx.Error)
	}
	return tx
}

func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil && err != gorm.ErrInvalidTransaction {
		t.Logf("Rollback failed: %v", err)
	}
}

// SendRequest performs an in-process request bound to tx.
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*http.Response, string) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := context.WithValue(req.Context(), contextkeys.DBContextKey, tx)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	ts.Router.ServeHTTP(rec, req)

	res := rec.Result()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	res.Body.Close()

	return res, string(resBody)
}

// SendForm posts url-encoded form data (webhook endpoints).
func (ts *TestServer) SendForm(t *testing.T, tx *gorm.DB, path string, form url.Values) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("Failed to build form request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	ctx := context.WithValue(req.Context(), contextkeys.DBContextKey, tx)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	ts.Router.ServeHTTP(rec, req)

	res := rec.Result()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	res.Body.Close()

	return res, string(resBody)
}
