// Package metrics provides Prometheus metrics for the trends service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "techtrends"

// Analysis outcomes used as the status label.
const (
	StatusOK          = "ok"
	StatusSourceError = "source_error"
	StatusFitError    = "fit_error"
	StatusCancelled   = "cancelled"
)

var (
	// AnalysesTotal counts trend analyses by outcome.
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of trend analyses",
		},
		[]string{"status"},
	)

	// AnalysisDuration measures a full analysis including the warehouse query.
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of trend analyses in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// RowsFetched observes how many (year, tag) rows each query returned.
	RowsFetched = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rows_fetched",
			Help:      "Distribution of rows returned by the tag count query",
			Buckets:   []float64{0, 5, 10, 20, 40, 80, 160},
		},
	)

	// VerdictsTotal counts verdicts handed out per tag.
	VerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdicts_total",
			Help:      "Total number of verdicts by tag",
		},
		[]string{"tag", "verdict"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
	)
)

// RecordAnalysis records one finished analysis.
func RecordAnalysis(status string, seconds float64) {
	AnalysesTotal.WithLabelValues(status).Inc()
	AnalysisDuration.Observe(seconds)
}

// RecordRows records the size of one query result.
func RecordRows(n int) {
	RowsFetched.Observe(float64(n))
}

// RecordVerdict records the verdict given to a tag.
func RecordVerdict(tag, verdict string) {
	VerdictsTotal.WithLabelValues(tag, verdict).Inc()
}

// RecordRateLimited records a rejected request.
func RecordRateLimited() {
	RateLimitedTotal.Inc()
}
