package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"techtrends.sheridan.dev/internal/appconf"
	"techtrends.sheridan.dev/internal/logging"
	"techtrends.sheridan.dev/internal/metrics"
	"techtrends.sheridan.dev/internal/trends"
	"techtrends.sheridan.dev/internal/warehouse"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config appconf.Config
	Query  warehouse.Query
	Logger *slog.Logger
	Source trends.RowSource
}

// AnalyzeTrends runs one full analysis against the configured source and
// records its outcome.
func (app *Application) AnalyzeTrends(ctx context.Context) ([]trends.TrendResult, error) {
	start := time.Now()
	counted := countingSource{source: app.Source}

	results, err := trends.Analyze(ctx, &counted)
	elapsed := time.Since(start)
	if err != nil {
		status := metrics.StatusSourceError
		var fitErr *trends.FitError
		switch {
		case errors.As(err, &fitErr):
			status = metrics.StatusFitError
		case errors.Is(err, context.Canceled):
			status = metrics.StatusCancelled
		}
		metrics.RecordAnalysis(status, elapsed.Seconds())
		logging.LogError(app.Logger, "trend analysis failed", err,
			slog.String("status", status),
			slog.String("component", "analyzer"))
		return nil, err
	}

	metrics.RecordAnalysis(metrics.StatusOK, elapsed.Seconds())
	metrics.RecordRows(counted.rows)
	for _, result := range results {
		metrics.RecordVerdict(result.Language, string(result.Verdict))
	}

	logging.LogOperation(app.Logger, "trends_analyzed", elapsed,
		slog.Int("rows", counted.rows),
		slog.Int("tags", len(results)),
		slog.String("component", "analyzer"))
	return results, nil
}

// countingSource remembers how many rows the wrapped source returned.
type countingSource struct {
	source trends.RowSource
	rows   int
}

func (c *countingSource) FetchRows(ctx context.Context) ([]trends.RawRow, error) {
	rows, err := c.source.FetchRows(ctx)
	c.rows = len(rows)
	return rows, err
}
