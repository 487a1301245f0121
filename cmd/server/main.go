package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"feedbackanalysis/internal/config"
	"feedbackanalysis/internal/db"
	"feedbackanalysis/internal/jobs"
	"feedbackanalysis/internal/logging"
	"feedbackanalysis/internal/metrics"
	"feedbackanalysis/internal/pipeline"
	"feedbackanalysis/internal/server"
	"feedbackanalysis/internal/source"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if cfg.IsDev() {
		if err := database.SeedDevFeedback(ctx); err != nil {
			log.Printf("Warning: failed to seed development feedback: %v", err)
		}
	}

	if n, err := database.GetUserCount(ctx); err == nil && n == 0 {
		log.Println("No login users exist yet. Create one with: feedbackctl user add <name>")
	}

	// Clusters and the sentiment model must both be available before serving
	proc, err := pipeline.FromConfig(ctx, cfg, nil)
	if err != nil {
		log.Fatalf("Failed to initialize feedback pipeline: %v", err)
	}

	metrics.Init(prometheus.DefaultRegisterer, database)

	srv := server.New(cfg)
	srv.RegisterRoutes(database, proc)

	if cfg.IngestOnStartup {
		ingester := jobs.NewIngester(
			source.New(cfg.FeedbackSource, cfg.FeedbackColumn, cfg.IngestLimit),
			proc, database, os.Stdout,
		)
		go jobs.NewScheduler(ingester, cfg.IngestInterval).Start(ctx)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
