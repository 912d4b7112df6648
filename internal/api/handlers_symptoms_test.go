package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestSymptomLogLifecycle(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t, nil)
	token := signupUser(t, app, "owner@example.com")
	otherToken := signupUser(t, app, "other@example.com")
	today := time.Now().UTC().Format("2006-01-02")

	status, payload := doJSON(t, app, http.MethodPost, "/api/symptoms", token, map[string]any{
		"date":        today,
		"symptoms":    map[string]any{"cramps": 4, "mood": 2},
		"sleepHours":  7.5,
		"stressLevel": 3,
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", status, payload)
	}
	created := mapField(t, payload, "log")
	logID := uint(created["id"].(float64))
	if symptoms := mapField(t, created, "symptoms"); symptoms["cramps"] != float64(4) {
		t.Fatalf("expected cramps 4, got %v", symptoms)
	}

	status, payload = doJSON(t, app, http.MethodPost, "/api/symptoms", token, map[string]any{
		"date":       today,
		"sleepHours": 25,
	})
	if status != http.StatusBadRequest || errorMessage(payload) != "invalid sleep hours" {
		t.Fatalf("expected 400 for sleep hours, got %d: %v", status, payload)
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/symptoms/date/"+today, token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if found := mapField(t, payload, "log"); uint(found["id"].(float64)) != logID {
		t.Fatalf("expected log %d by date, got %v", logID, found["id"])
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/symptoms/date/2020-01-01", token, nil)
	if status != http.StatusOK || payload["log"] != nil {
		t.Fatalf("expected empty log for unlogged date, got %d: %v", status, payload)
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/symptoms/latest/current", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	if latest := mapField(t, payload, "log"); datePrefix(latest["date"]) != today {
		t.Fatalf("expected latest log on %s, got %v", today, latest["date"])
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/symptoms/stats/summary?days=7", token, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, payload)
	}
	stats := mapField(t, payload, "stats")
	if stats["total_logs"] != float64(1) || stats["avg_sleep"] != 7.5 || stats["avg_stress"] != float64(3) {
		t.Fatalf("unexpected summary %v", stats)
	}
	if averages := mapField(t, stats, "averages"); averages["cramps"] != float64(4) {
		t.Fatalf("expected cramps average 4, got %v", averages)
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/symptoms?startDate="+today+"&endDate="+today, token, nil)
	if status != http.StatusOK || len(listField(t, payload, "logs")) != 1 {
		t.Fatalf("expected one log in range, got %d: %v", status, payload)
	}

	logPath := fmt.Sprintf("/api/symptoms/%d", logID)
	status, payload = doJSON(t, app, http.MethodPut, logPath, otherToken, map[string]any{"notes": "mine"})
	if status != http.StatusNotFound || errorMessage(payload) != "Log not found" {
		t.Fatalf("expected 404 for foreign update, got %d: %v", status, payload)
	}

	status, payload = doJSON(t, app, http.MethodPut, logPath, token, map[string]any{"notes": "long day"})
	if status != http.StatusOK {
		t.Fatalf("expected 200 for update, got %d: %v", status, payload)
	}
	if updated := mapField(t, payload, "log"); updated["notes"] != "long day" {
		t.Fatalf("expected updated notes, got %v", updated["notes"])
	}

	status, payload = doJSON(t, app, http.MethodDelete, logPath, token, nil)
	if status != http.StatusOK || payload["message"] != "Log deleted successfully" {
		t.Fatalf("expected 200 for delete, got %d: %v", status, payload)
	}

	status, payload = doJSON(t, app, http.MethodGet, "/api/symptoms", token, nil)
	if status != http.StatusOK || len(listField(t, payload, "logs")) != 0 {
		t.Fatalf("expected no logs after delete, got %d: %v", status, payload)
	}
}
