package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PollAttempts counts status checks against provider jobs by outcome
	// (pending, succeeded, failed, error).
	PollAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandkit_provider_poll_attempts_total",
			Help: "Status checks performed against provider jobs",
		},
		[]string{"outcome"},
	)

	// GenerationRequests counts requester calls by kind (names, logo, slogan) and outcome.
	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandkit_generation_requests_total",
			Help: "Generation requests by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "brandkit_generation_duration_seconds",
			Help:    "Wall time from submission to decoded result",
			Buckets: []float64{1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"kind"},
	)

	// LogoVariants counts derivation runs: derived or degraded.
	LogoVariants = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brandkit_logo_variants_total",
			Help: "Logo variant derivation runs by outcome",
		},
		[]string{"outcome"},
	)
)
