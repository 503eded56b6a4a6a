package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pecollective/market-pulse/app/api"
	"github.com/pecollective/market-pulse/app/cfg"
	"github.com/pecollective/market-pulse/app/database"
	"github.com/pecollective/market-pulse/app/export"
	"github.com/pecollective/market-pulse/app/ingest"
	"github.com/pecollective/market-pulse/app/intel"
	"github.com/pecollective/market-pulse/app/jobs"
	"github.com/pecollective/market-pulse/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting Market Pulse server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	rules := jobs.DefaultRuleset()
	if err := jobs.LoadRulesFile(rules, appCfg.RulesFile); err != nil {
		slog.Error("Failed to load rules file", "path", appCfg.RulesFile, "error", err)
		os.Exit(1)
	}

	jobRepo := database.NewJobRepository(db)
	snapshotRepo := database.NewSnapshotRepository(db)

	reader := ingest.NewReader()
	enricher := jobs.NewEnricher(rules, appCfg.WorkerCount)
	aggregator := intel.NewAggregator(rules)
	exporter := export.NewExporter(appCfg.OutputDir)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval_seconds", appCfg.SchedulerInterval, "data_dir", appCfg.DataDir)
	scheduler := tasks.NewScheduler(reader, enricher, aggregator, exporter, jobRepo, snapshotRepo)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(jobRepo, snapshotRepo, scheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Market Pulse server started")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
