// Package cli implements the feedbackctl commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedbackanalysis/internal/config"
	"feedbackanalysis/internal/db"
	"feedbackanalysis/internal/logging"
)

var (
	databaseURL string
	logLevel    string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "feedbackctl",
	Short: "Classify and store customer feedback",
	Long:  "Batch tooling for the feedback analysis service: ingest feedback, classify ad-hoc text, manage login users and run migrations.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logLevel, "text")
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database URL (default: $DATABASE_URL)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
}

func loadConfig() *config.Config {
	cfg := config.Load()
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	return cfg
}

func openDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
