package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techtrends.sheridan.dev/internal/app"
	"techtrends.sheridan.dev/internal/appconf"
	"techtrends.sheridan.dev/internal/logging"
	"techtrends.sheridan.dev/internal/restapi"
	"techtrends.sheridan.dev/internal/warehouse"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := appconf.ParseFlags("api", args)
	if err != nil {
		return err
	}

	logger := logging.NewStructuredLogger(os.Stdout, cfg.LogLevel)
	query := warehouse.DefaultQuery()

	source, closer, err := app.NewRowSource(cfg, query, logger)
	if err != nil {
		logging.LogError(logger, "failed to initialize tag count source", err,
			slog.String("source", string(cfg.Source)))
		return err
	}
	defer logging.SafeCloseWithLogging(closer, logger, "row_source")

	api := restapi.NewRestAPI(&app.Application{
		Config: cfg,
		Query:  query,
		Logger: logger,
		Source: source,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second, // cold warehouse queries can take several seconds
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", srv.Addr),
			slog.String("env", cfg.Env.String()),
			slog.String("source", string(cfg.Source)))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logging.LogError(logger, "server stopped", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(logger, "graceful shutdown failed", err)
		return err
	}
	return nil
}
