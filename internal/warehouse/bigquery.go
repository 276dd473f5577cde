package warehouse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"techtrends.sheridan.dev/internal/logging"
	"techtrends.sheridan.dev/internal/trends"
)

// BigQueryConfig is injected once at startup. Credentials are passed to the
// client explicitly rather than through GOOGLE_APPLICATION_CREDENTIALS.
type BigQueryConfig struct {
	ProjectID       string
	CredentialsFile string
}

// BigQuerySource runs Query against the public Stack Overflow dataset. A
// client is opened per FetchRows call and closed before it returns.
type BigQuerySource struct {
	config BigQueryConfig
	query  Query
	logger *slog.Logger
}

func NewBigQuerySource(config BigQueryConfig, query Query, logger *slog.Logger) (*BigQuerySource, error) {
	if config.ProjectID == "" {
		return nil, errors.New("bigquery project id is required")
	}
	if _, err := os.Stat(config.CredentialsFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("service account key not found at path: %s", config.CredentialsFile)
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return &BigQuerySource{
		config: config,
		query:  query,
		logger: logging.ForComponent(logger, "bigquery_source"),
	}, nil
}

// FetchRows implements trends.RowSource.
func (s *BigQuerySource) FetchRows(ctx context.Context) ([]trends.RawRow, error) {
	start := time.Now()

	client, err := bigquery.NewClient(ctx, s.config.ProjectID, option.WithCredentialsFile(s.config.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}
	defer logging.SafeCloseWithLogging(client, s.logger, "bigquery_client")

	q := client.Query(s.query.BigQuerySQL())
	q.Parameters = []bigquery.QueryParameter{
		{Name: "start_year", Value: s.query.StartYear},
		{Name: "end_year", Value: s.query.EndYear},
		{Name: "tags", Value: s.query.Tags},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run tag count query: %w", err)
	}

	rows, err := collectRows(it)
	if err != nil {
		return nil, err
	}

	logging.LogOperation(s.logger, "tag_counts_fetched", time.Since(start),
		slog.Int("rows", len(rows)),
		slog.String("project", s.config.ProjectID))
	return rows, nil
}

// tagCountRow mirrors one result row of the aggregation.
type tagCountRow struct {
	Year      int64  `bigquery:"year"`
	Tag       string `bigquery:"tag"`
	PostCount int64  `bigquery:"post_count"`
}

// rowIterator is the subset of *bigquery.RowIterator used here.
type rowIterator interface {
	Next(dst interface{}) error
}

func collectRows(it rowIterator) ([]trends.RawRow, error) {
	var rows []trends.RawRow
	for {
		var row tagCountRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tag count row: %w", err)
		}
		rows = append(rows, trends.RawRow{
			Year:  int(row.Year),
			Tag:   row.Tag,
			Count: int(row.PostCount),
		})
	}
}
