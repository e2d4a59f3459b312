// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "futurecast"

// Registry holds every collector served on /metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// HTTP metrics
	HTTPRequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// Identity metrics
	WalletLogins = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wallet_logins_total",
		Help:      "Wallet logins by outcome (created, existing, invalid).",
	}, []string{"outcome"})

	// Gated content metrics
	UnlockRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unlock_requests_total",
		Help:      "Gated content requests by outcome (granted, denied, not_found).",
	}, []string{"outcome"})

	// Seeding metrics
	SeededForecasts = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seeded_forecasts_total",
		Help:      "Forecast rows written by the seeding tool, by source (sample, generated, fallback).",
	}, []string{"source"})

	SeedRunDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "seed_run_duration_seconds",
		Help:      "Duration of a complete seeding run.",
		Buckets:   []float64{0.1, 1, 5, 15, 30, 60, 120},
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
