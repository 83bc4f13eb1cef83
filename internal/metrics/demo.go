package metrics

import "github.com/prometheus/client_golang/prometheus"

// Demo Prometheus metrics.
var (
	StagedRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "showcase",
			Name:      "staged_runs_total",
			Help:      "Staged demo runs by terminal outcome",
		},
		[]string{"demo", "outcome"}, // completed / canceled / failed / rejected
	)

	StagedStepDelay = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "showcase",
			Name:      "staged_step_delay_seconds",
			Help:      "Observed pause between staged steps",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 0.8, 1, 2.5},
		},
		[]string{"demo"},
	)

	RankingResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "showcase",
			Name:      "ranking_results",
			Help:      "Number of records returned per ranking call",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		},
		[]string{"ranker"}, // word_overlap / cosine
	)

	RetrievalFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "showcase",
			Name:      "retrieval_fallback_total",
			Help:      "Queries answered with the no-relevant-information fallback",
		},
	)
)

var demoMetricsRegistered bool

// RegisterDemoMetrics registers the demo metrics. Must be called once from main.
func RegisterDemoMetrics() {
	if demoMetricsRegistered {
		return
	}
	prometheus.MustRegister(StagedRunsTotal)
	prometheus.MustRegister(StagedStepDelay)
	prometheus.MustRegister(RankingResults)
	prometheus.MustRegister(RetrievalFallbackTotal)
	demoMetricsRegistered = true
}
