// Package metrics exposes Prometheus counters for cycle derivation and remote analysis.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements services.DerivationRecorder and services.AnalysisRecorder.
type Collector struct {
	derivations        *prometheus.CounterVec
	derivationDuration prometheus.Histogram
	analyses           *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		derivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solaris_cycle_derivations_total",
			Help: "Cycle re-derivations by outcome.",
		}, []string{"outcome"}),
		derivationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "solaris_cycle_derivation_duration_seconds",
			Help:    "Time spent re-deriving one user's cycles.",
			Buckets: prometheus.DefBuckets,
		}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "solaris_insight_analyses_total",
			Help: "Remote analysis attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.derivations,
		c.derivationDuration,
		c.analyses,
	)

	return c
}

func (c *Collector) RecordDerivation(outcome string, duration time.Duration) {
	c.derivations.WithLabelValues(outcome).Inc()
	c.derivationDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordAnalysis(outcome string) {
	c.analyses.WithLabelValues(outcome).Inc()
}

// Handler returns the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
