package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/terraincognita07/solaris/internal/services"
)

func TestInsightsFallBackToBaseline(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t, nil)
	token := signupUser(t, app, "owner@example.com")

	status, payload := doJSON(t, app, http.MethodGet, "/api/insights/current", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if payload["hasData"] != false || payload["currentPhase"] != services.PhaseUnknown {
		t.Fatalf("expected empty insights, got %v", payload)
	}

	logPeriodDays(t, app, token, "2026-01-01", "2026-01-29")

	status, payload = doJSON(t, app, http.MethodGet, "/api/insights/current", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if payload["hasData"] != true || payload["totalCycles"] != float64(2) || payload["avgCycleLength"] != float64(28) {
		t.Fatalf("unexpected current insights %v", payload)
	}
	if payload["latestCycleStart"] != "2026-01-29" {
		t.Fatalf("expected latest start 2026-01-29, got %v", payload["latestCycleStart"])
	}
	prediction := mapField(t, payload, "prediction")
	if prediction["method"] != services.PredictionMethodBaseline || prediction["nextPeriodDate"] != "2026-02-26" || prediction["confidence"] != 0.4 {
		t.Fatalf("unexpected baseline prediction %v", prediction)
	}

	status, payload = doJSON(t, app, http.MethodPost, "/api/insights/analyze", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if payload["success"] != false || payload["hasData"] != false {
		t.Fatalf("expected analysis to need two measured cycles, got %v", payload)
	}

	logPeriodDays(t, app, token, "2026-02-28")

	status, payload = doJSON(t, app, http.MethodPost, "/api/insights/analyze", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if payload["success"] != true || payload["message"] != "Using baseline predictions (AI service unavailable)" {
		t.Fatalf("unexpected fallback analysis %v", payload)
	}
	prediction = mapField(t, payload, "prediction")
	if prediction["nextPeriodDate"] != "2026-02-27" || prediction["confidence"] != 0.3 {
		t.Fatalf("unexpected fallback prediction %v", prediction)
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/insights/history", token, nil)
	if status != http.StatusOK || len(listField(t, payload, "insights")) != 0 {
		t.Fatalf("expected no stored insights without remote analysis, got %d: %v", status, payload)
	}
}

func TestInsightsUseRemoteAnalysis(t *testing.T) {
	t.Parallel()

	var (
		calls      atomic.Int32
		sentCycles atomic.Int32
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var request services.AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		sentCycles.Store(int32(len(request.Cycles)))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"prediction": {"nextPeriodDate": "2026-03-29", "confidence": 0.9},
			"riskAssessment": {"level": "high"},
			"recommendations": ["rest"]
		}`))
	}))
	t.Cleanup(server.Close)

	app, _, _ := newTestApp(t, func(settings *Settings) {
		settings.Analyzer = services.NewAnalysisClient(server.URL, time.Second, 60)
	})
	token := signupUser(t, app, "owner@example.com")
	otherToken := signupUser(t, app, "other@example.com")

	logPeriodDays(t, app, token, "2026-01-01", "2026-01-29", "2026-02-28")

	status, payload := doJSON(t, app, http.MethodGet, "/api/insights/current", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if prediction := mapField(t, payload, "prediction"); prediction["nextPeriodDate"] != "2026-03-29" {
		t.Fatalf("expected remote prediction, got %v", prediction)
	}
	if risk := mapField(t, payload, "riskAssessment"); risk["level"] != "high" {
		t.Fatalf("expected remote risk assessment, got %v", risk)
	}
	if got := sentCycles.Load(); got != 2 {
		t.Fatalf("expected 2 measured cycles sent, got %d", got)
	}

	status, payload = doJSON(t, app, http.MethodPost, "/api/insights/analyze", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if payload["success"] != true || payload["message"] != "AI analysis complete" {
		t.Fatalf("unexpected remote analysis %v", payload)
	}
	if recommendations := listField(t, payload, "recommendations"); len(recommendations) != 1 {
		t.Fatalf("expected passthrough recommendations, got %v", recommendations)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 remote calls, got %d", got)
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/insights/history", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	history := listField(t, payload, "insights")
	if len(history) != 2 {
		t.Fatalf("expected 2 stored insights, got %d", len(history))
	}
	first := history[0].(map[string]any)
	if first["display_priority"] != float64(10) {
		t.Fatalf("expected high risk priority 10, got %v", first["display_priority"])
	}
	insightPath := fmt.Sprintf("/api/insights/%d/viewed", uint(first["id"].(float64)))

	status, payload = doJSON(t, app, http.MethodPut, insightPath, otherToken, nil)
	if status != http.StatusNotFound || errorMessage(payload) != "Insight not found" {
		t.Fatalf("expected 404 for foreign insight, got %d: %v", status, payload)
	}

	status, payload = doJSON(t, app, http.MethodPut, insightPath, token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if viewed := mapField(t, payload, "insight"); viewed["viewed"] != true {
		t.Fatalf("expected insight marked viewed, got %v", viewed)
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/insights/unviewed", token, nil)
	if status != http.StatusOK || len(listField(t, payload, "insights")) != 1 {
		t.Fatalf("expected one unviewed insight left, got %d: %v", status, payload)
	}
}
