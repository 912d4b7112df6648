package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/terraincognita07/solaris/internal/api"
	"github.com/terraincognita07/solaris/internal/config"
	"github.com/terraincognita07/solaris/internal/db"
	"github.com/terraincognita07/solaris/internal/metrics"
)

func newTestServer(t *testing.T, cfg config.Config) (*fiber.App, *metrics.Collector) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "solaris-main-test.db"))
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

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	handler, err := api.NewHandler(database, api.Settings{
		SecretKey:   "0123456789abcdef0123456789abcdef",
		Location:    time.UTC,
		Derivations: collector,
		Analyses:    collector,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return newApp(cfg, handler, registry), collector
}

func TestNewAppServesHealthWithRequestID(t *testing.T) {
	app, _ := newTestServer(t, config.Config{CORSAllowedOrigins: "*"})

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if response.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Fatal("expected request id header")
	}
}

func TestNewAppExposesMetricsWhenEnabled(t *testing.T) {
	app, collector := newTestServer(t, config.Config{CORSAllowedOrigins: "*", MetricsEnabled: true})
	collector.RecordAnalysis("skipped")

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read metrics body: %v", err)
	}
	if !strings.Contains(string(body), `solaris_insight_analyses_total{outcome="skipped"} 1`) {
		t.Fatalf("expected analysis counter in scrape output, got %s", body)
	}
}

func TestNewAppHidesMetricsWhenDisabled(t *testing.T) {
	app, _ := newTestServer(t, config.Config{CORSAllowedOrigins: "*"})

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", response.StatusCode)
	}
}

func TestCORSMiddlewareConfigAllowsBearerHeader(t *testing.T) {
	corsConfig := corsMiddlewareConfig("https://app.example.com")
	if corsConfig.AllowOrigins != "https://app.example.com" {
		t.Fatalf("expected configured origin, got %q", corsConfig.AllowOrigins)
	}
	if !strings.Contains(corsConfig.AllowHeaders, "Authorization") {
		t.Fatalf("expected Authorization in allowed headers, got %q", corsConfig.AllowHeaders)
	}
}
