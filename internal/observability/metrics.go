package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcheck",
		Name:      "analyses_total",
		Help:      "Total number of completed analyses by outcome",
	}, []string{"outcome"})

	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcheck",
		Name:      "gate_decisions_total",
		Help:      "Outfit gate decisions by stop reason (proceed when empty)",
	}, []string{"reason"})

	ClassifierVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcheck",
		Name:      "classifier_verdicts_total",
		Help:      "Verdicts produced by each classifier in the fallback chain",
	}, []string{"source", "is_outfit"})

	ClassifierUnavailable = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcheck",
		Name:      "classifier_unavailable_total",
		Help:      "Number of times a classifier provider was unavailable",
	}, []string{"provider"})

	RatingFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fitcheck",
		Name:      "rating_fallbacks_total",
		Help:      "Number of demo results substituted for failed rating calls",
	})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitcheck",
		Name:      "metrics_store_errors_total",
		Help:      "Swallowed metrics store failures by operation",
	}, []string{"op"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitcheck",
		Name:      "stage_duration_seconds",
		Help:      "Duration of analysis pipeline stages",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	}, []string{"stage"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitcheck",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitcheck",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket connections",
	})
)
