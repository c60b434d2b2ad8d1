package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zamanlabs/medicare/internal/db"
	"github.com/zamanlabs/medicare/internal/services"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecretKey = "test-secret-key-0123456789abcdef0123"
	testPassword  = "Secure123"
)

type fakeTicker struct {
	ch chan time.Time
}

func (ticker *fakeTicker) C() <-chan time.Time {
	return ticker.ch
}

func (ticker *fakeTicker) Stop() {}

type fakeClock struct {
	now    time.Time
	ticker *fakeTicker
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, ticker: &fakeTicker{ch: make(chan time.Time, 1)}}
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) NewTicker(time.Duration) services.Ticker {
	return clock.ticker
}

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()
	return newTestAppWithOptions(t, HandlerOptions{})
}

func newTestAppWithOptions(t *testing.T, options HandlerOptions) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "medicare-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if options.SecretKey == "" {
		options.SecretKey = testSecretKey
	}
	handler, err := NewHandler(database, options)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.authService.WithHashCost(bcrypt.MinCost)
	t.Cleanup(handler.Close)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, handler
}

func doJSONRequest(t *testing.T, app *fiber.App, method string, path string, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func decodeJSONResponse(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func expectStatus(t *testing.T, response *http.Response, status int) {
	t.Helper()
	if response.StatusCode != status {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", status, response.StatusCode, string(body))
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}

func registerTestUser(t *testing.T, app *fiber.App, email string) (string, uint) {
	t.Helper()

	response := doJSONRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":        email,
		"password":     testPassword,
		"display_name": "Test Patient",
	})
	expectStatus(t, response, http.StatusCreated)

	payload := authResponse{}
	decodeJSONResponse(t, response, &payload)
	if payload.Token == "" || payload.User.ID == 0 {
		t.Fatalf("expected token and user in register response, got %#v", payload)
	}
	return payload.Token, payload.User.ID
}
