// ============================================================================
// etds - Predictive Expression Translator
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the HTTP/WebSocket translation service
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/etds/foundation/core/log"
	"github.com/msto63/etds/internal/history"
	"github.com/msto63/etds/internal/server"
	"github.com/msto63/etds/pkg/core/version"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the translator over HTTP and WebSocket",
	Long: `Start the translation service.

Endpoints:
  POST /api/v1/compile   {"expression": "...", "tokens": false}
  GET  /api/v1/grammar   productions and FIRST/FOLLOW sets
  GET  /api/v1/history   recorded runs (when history is enabled)
  GET  /api/v1/ws        WebSocket: {"type":"compile","payload":{...}}
  GET  /health           health report
  GET  /metrics          Prometheus metrics

Translation errors answer 422 with kind, line, column and message.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.Config{
		Host:           appConfig.Server.Host,
		Port:           appConfig.Server.Port,
		ReadTimeout:    appConfig.Server.ReadTimeout.Duration,
		WriteTimeout:   appConfig.Server.WriteTimeout.Duration,
		MaxRequestSize: appConfig.Server.MaxRequestSize,
		Version:        version.Version,
		CacheSize:      appConfig.Server.CacheSize,
		CacheTTL:       appConfig.Server.CacheTTL.Duration,
	}
	if cfg.CacheSize < 0 {
		cfg.CacheSize = 0
	}
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	// The service always reports its lifecycle
	if !logger.IsLevelEnabled(mdwlog.LevelInfo) {
		logger.SetLevel(mdwlog.LevelInfo)
	}

	store, err := openHistory(false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		if n, err := store.Prune(cmd.Context(), appConfig.History.Retention.Duration); err != nil {
			logger.WarnWithErr("failed to prune history", err)
		} else if n > 0 {
			logger.Info("history pruned at startup", mdwlog.Fields{"removed": n})
		}
	}

	srv := server.New(cfg, newEngine(), store, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if store != nil && appConfig.History.PruneSchedule != "off" {
		sched := history.NewScheduler(store, appConfig.History.PruneSchedule, appConfig.History.Retention.Duration, logger)
		if err := sched.Start(ctx); err != nil {
			return err
		}
		defer sched.Stop()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
