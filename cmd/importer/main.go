package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"techtrends.sheridan.dev/internal/appconf"
	"techtrends.sheridan.dev/internal/logging"
	"techtrends.sheridan.dev/internal/warehouse"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	dbPath := fs.String("db", "techtrends.db", "Path to the SQLite mirror database")
	csvPath := fs.String("csv", "", "CSV export with columns id,creation_date,tags")
	logLevel := fs.String("log-level", "info", "Log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *csvPath == "" {
		return errors.New("-csv is required")
	}

	level, err := appconf.ParseLogLevel(*logLevel)
	if err != nil {
		return err
	}
	logger := logging.ForComponent(logging.NewStructuredLogger(os.Stdout, level), "importer")

	return importCSV(ctx, *dbPath, *csvPath, logger)
}

func importCSV(ctx context.Context, dbPath, csvPath string, logger *slog.Logger) error {
	start := time.Now()

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("opening csv: %w", err)
	}
	defer logging.SafeCloseWithLogging(f, logger, "csv_file")

	questions, err := warehouse.ReadQuestionsCSV(f)
	if err != nil {
		return err
	}

	db, err := warehouse.InitDB(dbPath)
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(db, logger, "sqlite_database")

	if err := warehouse.InsertQuestions(ctx, db, questions, logger); err != nil {
		return err
	}

	logging.LogOperation(logger, "import_questions", time.Since(start),
		slog.Int("questions", len(questions)),
		slog.String("db", dbPath))
	return nil
}
