package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, outcome string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" && label.GetValue() == outcome {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestRecordDerivationCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordDerivation("applied", 5*time.Millisecond)
	c.RecordDerivation("applied", 7*time.Millisecond)
	c.RecordDerivation("failed", time.Millisecond)

	if got := counterValue(t, reg, "solaris_cycle_derivations_total", "applied"); got != 2 {
		t.Fatalf("applied derivations = %v, want 2", got)
	}
	if got := counterValue(t, reg, "solaris_cycle_derivations_total", "failed"); got != 1 {
		t.Fatalf("failed derivations = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, family := range families {
		if family.GetName() == "solaris_cycle_derivation_duration_seconds" {
			if count := family.GetMetric()[0].GetHistogram().GetSampleCount(); count != 3 {
				t.Fatalf("duration samples = %d, want 3", count)
			}
			return
		}
	}
	t.Fatal("duration histogram not found")
}

func TestRecordAnalysisCountsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordAnalysis("fallback")

	if got := counterValue(t, reg, "solaris_insight_analyses_total", "fallback"); got != 1 {
		t.Fatalf("fallback analyses = %v, want 1", got)
	}
}

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordAnalysis("success")

	server := httptest.NewServer(Handler(reg))
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `solaris_insight_analyses_total{outcome="success"} 1`) {
		t.Fatalf("expected analysis counter in scrape output, got:\n%s", body)
	}
}

func TestNewCollectorPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()
	NewCollector(reg)
}
