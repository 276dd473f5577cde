package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"techtrends.sheridan.dev/internal/app"
	"techtrends.sheridan.dev/internal/appconf"
	"techtrends.sheridan.dev/internal/logging"
	"techtrends.sheridan.dev/internal/trends"
	"techtrends.sheridan.dev/internal/warehouse"
)

// testQuestions returns questions giving python 10..30 (+5/yr), go 30..22
// (-2/yr) and rust 5 in 2023 only, plus rows the query must ignore.
func testQuestions() []warehouse.Question {
	var questions []warehouse.Question
	id := int64(0)
	add := func(year, n int, tags ...string) {
		for i := 0; i < n; i++ {
			id++
			questions = append(questions, warehouse.Question{
				ID:           id,
				CreationDate: time.Date(year, time.March, 1+i%28, 12, 0, 0, 0, time.UTC),
				Tags:         tags,
			})
		}
	}

	for i, year := range []int{2019, 2020, 2021, 2022, 2023} {
		add(year, 10+5*i, "python")
		add(year, 30-2*i, "go")
	}
	add(2023, 5, "rust", "webassembly")
	add(2018, 50, "python")
	add(2024, 50, "go")
	add(2021, 12, "haskell")
	return questions
}

// createTestApi creates a RestAPI backed by an in-memory SQLite mirror seeded with testQuestions.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	db, err := warehouse.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, warehouse.InsertQuestions(context.Background(), db, testQuestions(), nil))

	source, err := warehouse.NewSQLiteSource(db, warehouse.DefaultQuery(), nil)
	require.NoError(t, err)

	return createTestApiWithSource(t, source, 0)
}

func createTestApiWithSource(t *testing.T, source trends.RowSource, rateLimit int) *RestAPI {
	t.Helper()
	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.Source = appconf.SourceSQLite
	cfg.SQLitePath = ":memory:"
	cfg.RateLimit = rateLimit

	return NewRestAPI(&app.Application{
		Config: cfg,
		Query:  warehouse.DefaultQuery(),
		Logger: logging.NewStructuredLogger(io.Discard, slog.LevelInfo),
		Source: source,
	})
}

func emptySource() trends.RowSource {
	return trends.RowSourceFunc(func(ctx context.Context) ([]trends.RawRow, error) {
		return nil, nil
	})
}

func failingSource(err error) trends.RowSource {
	return trends.RowSourceFunc(func(ctx context.Context) ([]trends.RawRow, error) {
		return nil, err
	})
}

// serveApiAndRetrieveEndpoint runs the full handler chain in a test server and returns the response with its body.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	t.Helper()
	server := httptest.NewServer(api.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(body)).Decode(&v))
	return v
}
