package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/sheetdb/internal/config"
	"github.com/JonMunkholm/sheetdb/internal/core"
	"github.com/JonMunkholm/sheetdb/internal/logging"
	"github.com/JonMunkholm/sheetdb/internal/store"
	"github.com/JonMunkholm/sheetdb/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"api_key_required", cfg.Security.RequireAPIKey,
	)

	registry := core.NewRegistry()
	service := core.NewService(registry)
	server := web.NewServer(service, cfg)

	// A store handle can be installed three ways: at startup from a
	// credentials file, at startup as the in-memory fake, or later via
	// the auth endpoint. Until one is installed, data routes return 503.
	ctx := context.Background()
	switch {
	case cfg.Sheets.UseFake:
		server.SetStore(store.NewMemStore())
		slog.Warn("using in-memory store, data will not survive restarts")
	case cfg.Sheets.CredentialsFile != "":
		credentials, err := os.ReadFile(cfg.Sheets.CredentialsFile)
		if err != nil {
			slog.Error("failed to read credentials file", "error", err)
			os.Exit(1)
		}
		st, err := store.Authenticate(ctx, credentials)
		if err != nil {
			slog.Error("failed to authenticate with Google Sheets", "error", err)
			os.Exit(1)
		}
		server.SetStore(st)
		slog.Info("store handle installed from credentials file")
	default:
		slog.Info("no credentials configured, waiting for auth endpoint")
	}

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
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
