package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/HarshitaThota/Flow-State/internal/db"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testSecretKey = "test-secret-key-0123456789abcdef"
	testPassword  = "StrongPass1"
)

// testNow is ovulation day for a 28/5 cycle that started on 2024-01-01.
var testNow = time.Date(2024, time.January, 14, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *Handler, *gorm.DB) {
	t.Helper()

	log := zaptest.NewLogger(t)
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "flowstate-api-test.db"), log)
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

	handler, err := NewHandler(database, HandlerOptions{
		SecretKey: testSecretKey,
		Location:  time.UTC,
		Logger:    log,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.clock = func() time.Time { return testNow }
	handler.authService.WithHashCost(bcrypt.MinCost)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(RequestID)
	app.Use(AccessLog(log))
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, handler, database
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
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
	return response
}

func readJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()

	payload := map[string]string{}
	readJSON(t, response, &payload)
	return payload["error"]
}

func responseCookie(response *http.Response, name string) *http.Cookie {
	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func expectStatus(t *testing.T, response *http.Response, expected int) {
	t.Helper()
	if response.StatusCode != expected {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, response.StatusCode, string(body))
	}
}

// registerTestUser creates an account and returns its bearer token.
func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    email,
		"password": testPassword,
	}, "")
	expectStatus(t, response, http.StatusCreated)

	session := sessionResponse{}
	readJSON(t, response, &session)
	if session.Token == "" {
		t.Fatal("expected session token")
	}
	return session.Token
}

// configuredTestUser registers an account whose cycle started on 2024-01-01.
func configuredTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	token := registerTestUser(t, app, email)
	response := doJSON(t, app, http.MethodPatch, "/api/profile", map[string]any{
		"last_period_start": "2024-01-01",
	}, token)
	expectStatus(t, response, http.StatusOK)
	response.Body.Close()
	return token
}

func uintString(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}
