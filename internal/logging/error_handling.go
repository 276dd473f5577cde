package logging

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// SafeCloseWithLogging closes closer and logs a failure against resource.
// Close errors caused by a cancelled request are expected and not logged.
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, resource string) {
	if closer == nil {
		return
	}
	logCleanupError(logger, "close failed", closer.Close(), resource)
}

// SafeRollbackWithLogging is deferred right after BeginTx. Once the
// transaction has been committed the rollback is a no-op and nothing is logged.
func SafeRollbackWithLogging(tx interface{ Rollback() error }, logger *slog.Logger, resource string) {
	if tx == nil {
		return
	}
	err := tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return
	}
	logCleanupError(logger, "rollback failed", err, resource)
}

func logCleanupError(logger *slog.Logger, message string, err error, resource string) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	LogError(logger, message, err,
		slog.String("resource", resource),
		slog.String("error_type", fmt.Sprintf("%T", err)),
		slog.String("component", "cleanup"))
}
