package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"portfolio.dev/internal/config"
	"portfolio.dev/internal/handlers"
	"portfolio.dev/internal/log"
)

var (
	serveAddr     string
	serveDataPath string
	serveLogLevel string
	servePretty   bool
	serveWatch    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides SERVER_ADDR)")
	serveCmd.Flags().StringVar(&serveDataPath, "data", "", "content directory (overrides DATA_PATH)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	serveCmd.Flags().BoolVar(&servePretty, "pretty", false, "human readable logs")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload content files on change (overrides WATCH_CONTENT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.Configure(log.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty || servePretty})
	logger := log.WithComponent("server")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := buildServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.WatchContent {
		if err := config.WatchContent(ctx, cfg.DataPath, reloadServices(svc)); err != nil {
			// static content keeps serving without the watcher
			logger.Warn().Err(err).Msg("content watcher unavailable")
		}
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handlers.SetupRoutes(cfg, svc),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.ServerAddr).
			Int("projects", svc.Projects.Count()).
			Bool("github_token", cfg.GitHubToken != "").
			Bool("relay_configured", cfg.RelayKey != "").
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

// loadConfig applies flag overrides on top of the environment
func loadConfig() (*config.Config, error) {
	if serveDataPath != "" {
		if err := os.Setenv("DATA_PATH", serveDataPath); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if serveAddr != "" {
		cfg.ServerAddr = serveAddr
	}
	if serveLogLevel != "" {
		cfg.LogLevel = serveLogLevel
	}
	if serveWatch {
		cfg.WatchContent = true
	}
	return cfg, nil
}
