package app

import (
	"fmt"
	"io"
	"log/slog"

	"techtrends.sheridan.dev/internal/appconf"
	"techtrends.sheridan.dev/internal/trends"
	"techtrends.sheridan.dev/internal/warehouse"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewRowSource builds the tag count source selected by cfg. The returned
// closer releases anything the source holds open and must be called on
// shutdown.
func NewRowSource(cfg appconf.Config, query warehouse.Query, logger *slog.Logger) (trends.RowSource, io.Closer, error) {
	switch cfg.Source {
	case appconf.SourceBigQuery:
		source, err := warehouse.NewBigQuerySource(warehouse.BigQueryConfig{
			ProjectID:       cfg.ProjectID,
			CredentialsFile: cfg.CredentialsFile,
		}, query, logger)
		if err != nil {
			return nil, nil, err
		}
		return source, nopCloser{}, nil

	case appconf.SourceSQLite:
		db, err := warehouse.InitDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		source, err := warehouse.NewSQLiteSource(db, query, logger)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return source, db, nil

	default:
		return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}
