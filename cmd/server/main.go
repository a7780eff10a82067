package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hirestack/ats-import/internal/ats"
	"github.com/hirestack/ats-import/internal/config"
	"github.com/hirestack/ats-import/internal/importer"
	"github.com/hirestack/ats-import/internal/logging"
	"github.com/hirestack/ats-import/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"ats_base_url", cfg.ATS.BaseURL,
		"import_max_file_size", cfg.Import.MaxFileSize,
		"import_session_ttl", cfg.Import.SessionTTL,
	)

	// Backend client for job lists and committed batches
	client := ats.NewClient(cfg.ATS.BaseURL, cfg.ATS.Token, cfg.ATS.Timeout)

	// Warm the job list so the first mapping request does not pay the
	// backend round trip. A failure here is not fatal; the list is
	// re-fetched lazily.
	service := importer.NewService(client, cfg, nil)
	if jobs, err := service.RefreshJobs(context.Background()); err != nil {
		slog.Warn("could not preload job list", "error", err)
	} else {
		slog.Info("job list loaded", "count", len(jobs))
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
