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
	"github.com/terraincognita07/solaris/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecretKey = "test-secret-key-0123456789abcdef0123"

const testPassword = "StrongPass1"

func newTestApp(t *testing.T, configure func(*Settings)) (*fiber.App, *Handler, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "solaris-api-test.db")
	database, err := db.OpenSQLite(databasePath)
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

	settings := Settings{
		SecretKey:        testSecretKey,
		Location:         time.UTC,
		PasswordHashCost: bcrypt.MinCost,
	}
	if configure != nil {
		configure(&settings)
	}

	handler, err := NewHandler(database, settings)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler, database
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, body any) (int, map[string]any) {
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
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	payload := map[string]any{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("decode response body %q: %v", string(raw), err)
		}
	}
	return response.StatusCode, payload
}

func signupUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	status, payload := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": testPassword,
		"name":     "Test User",
	})
	if status != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d: %v", email, status, payload)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatalf("signup %s: expected token in %v", email, payload)
	}
	return token
}

func logPeriodDays(t *testing.T, app *fiber.App, token string, dates ...string) {
	t.Helper()

	for _, date := range dates {
		status, payload := doJSON(t, app, http.MethodPost, "/api/period-days", token, map[string]string{
			"date": date,
			"flow": "medium",
		})
		if status != http.StatusCreated {
			t.Fatalf("log period day %s: expected 201, got %d: %v", date, status, payload)
		}
	}
}

func errorMessage(payload map[string]any) string {
	message, _ := payload["error"].(string)
	return message
}

func mapField(t *testing.T, payload map[string]any, key string) map[string]any {
	t.Helper()

	value, ok := payload[key].(map[string]any)
	if !ok {
		t.Fatalf("expected object %q in %v", key, payload)
	}
	return value
}

func listField(t *testing.T, payload map[string]any, key string) []any {
	t.Helper()

	value, ok := payload[key].([]any)
	if !ok {
		t.Fatalf("expected array %q in %v", key, payload)
	}
	return value
}

func datePrefix(value any) string {
	raw, _ := value.(string)
	if len(raw) < len("2006-01-02") {
		return raw
	}
	return raw[:len("2006-01-02")]
}
