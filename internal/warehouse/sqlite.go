package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"techtrends.sheridan.dev/internal/logging"
	"techtrends.sheridan.dev/internal/trends"
)

// creationDateLayout is understood by SQLite's strftime.
const creationDateLayout = "2006-01-02 15:04:05"

// Question is one row of the local posts_questions mirror.
type Question struct {
	ID           int64
	CreationDate time.Time
	Tags         []string
}

// InitDB opens the SQLite database at path and creates the questions table.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS posts_questions (
			id INTEGER PRIMARY KEY,
			creation_date TEXT NOT NULL,
			tags TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_posts_questions_creation_date ON posts_questions(creation_date);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error creating posts_questions table: %w", err)
	}

	return db, nil
}

// InsertQuestions stores questions in a single transaction, replacing rows
// with the same id.
func InsertQuestions(ctx context.Context, db *sql.DB, questions []Question, logger *slog.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, logger, "insert_questions")

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO posts_questions (id, creation_date, tags) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer logging.SafeCloseWithLogging(stmt, logger, "insert_questions_stmt")

	for _, q := range questions {
		_, err := stmt.ExecContext(ctx, q.ID, q.CreationDate.UTC().Format(creationDateLayout), strings.Join(q.Tags, "|"))
		if err != nil {
			return fmt.Errorf("error inserting question %d: %w", q.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// SQLiteSource runs Query against a local posts_questions mirror.
type SQLiteSource struct {
	db     *sql.DB
	query  Query
	logger *slog.Logger
}

func NewSQLiteSource(db *sql.DB, query Query, logger *slog.Logger) (*SQLiteSource, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return &SQLiteSource{
		db:     db,
		query:  query,
		logger: logging.ForComponent(logger, "sqlite_source"),
	}, nil
}

// FetchRows implements trends.RowSource.
func (s *SQLiteSource) FetchRows(ctx context.Context) ([]trends.RawRow, error) {
	start := time.Now()

	result, err := s.db.QueryContext(ctx, s.query.SQLiteSQL(), s.query.sqliteArgs()...)
	if err != nil {
		return nil, fmt.Errorf("failed to run tag count query: %w", err)
	}
	defer logging.SafeCloseWithLogging(result, s.logger, "tag_count_rows")

	var rows []trends.RawRow
	for result.Next() {
		var row trends.RawRow
		if err := result.Scan(&row.Year, &row.Tag, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to read tag count row: %w", err)
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tag count rows: %w", err)
	}

	logging.LogOperation(s.logger, "tag_counts_fetched", time.Since(start),
		slog.Int("rows", len(rows)))
	return rows, nil
}
