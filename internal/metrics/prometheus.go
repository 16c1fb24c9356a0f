package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const promNamespace = "innopilot"

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: promNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: promNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// Generation
	GenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: promNamespace,
			Subsystem: "generation",
			Name:      "total",
			Help:      "Total number of prompt generations by strategy and outcome",
		},
		[]string{"strategy", "provider", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: promNamespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Model call duration in seconds",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"strategy", "provider"},
	)

	LLMTokensUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: promNamespace,
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Total tokens used for LLM calls",
		},
		[]string{"provider", "model", "type"}, // type: input/output
	)
)

func observeGeneration(g Generation) {
	status := "success"
	if !g.Success {
		status = "error"
	}

	GenerationTotal.WithLabelValues(g.Strategy, g.Provider, status).Inc()
	GenerationDuration.WithLabelValues(g.Strategy, g.Provider).Observe(g.Duration.Seconds())

	if g.InputTokens > 0 {
		LLMTokensUsed.WithLabelValues(g.Provider, g.Model, "input").Add(float64(g.InputTokens))
	}
	if g.OutputTokens > 0 {
		LLMTokensUsed.WithLabelValues(g.Provider, g.Model, "output").Add(float64(g.OutputTokens))
	}
}
