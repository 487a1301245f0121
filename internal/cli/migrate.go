package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"feedbackanalysis/internal/db"
)

func init() {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		Run:   runMigrate,
	}

	cmd.Flags().Bool("seed", false, "Insert sample feedback when the table is empty")

	RootCmd.AddCommand(cmd)
}

func runMigrate(cmd *cobra.Command, args []string) {
	seed, _ := cmd.Flags().GetBool("seed")
	cfg := loadConfig()
	ctx := cmd.Context()

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		exitErr("connect", err)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		exitErr("migrate", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")

	if seed {
		if err := database.SeedDevFeedback(ctx); err != nil {
			exitErr("seed", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "sample feedback seeded")
	}
}
