package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedbackanalysis/internal/jobs"
	"feedbackanalysis/internal/pipeline"
	"feedbackanalysis/internal/source"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Classify feedback from the configured source and store the results",
		Long:  "Read feedback rows from a CSV file or URL, classify and cluster each one, print the results and append them to the database.",
		Args:  cobra.NoArgs,
		Run:   runIngest,
	}

	cmd.Flags().StringP("source", "s", "", "CSV path or http(s) URL (default: $FEEDBACK_SOURCE)")
	cmd.Flags().StringP("column", "c", "", "Feedback column name (default: $FEEDBACK_COLUMN)")
	cmd.Flags().IntP("limit", "l", -1, "Maximum rows to read, 0 for all (default: $INGEST_LIMIT)")
	cmd.Flags().Bool("quiet", false, "Do not print each result")

	RootCmd.AddCommand(cmd)
}

func runIngest(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	if s, _ := cmd.Flags().GetString("source"); s != "" {
		cfg.FeedbackSource = s
	}
	if c, _ := cmd.Flags().GetString("column"); c != "" {
		cfg.FeedbackColumn = c
	}
	if l, _ := cmd.Flags().GetInt("limit"); l >= 0 {
		cfg.IngestLimit = l
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	ctx := cmd.Context()

	database, err := openDB(ctx, cfg)
	if err != nil {
		exitErr("open database", err)
	}
	defer database.Close()

	proc, err := pipeline.FromConfig(ctx, cfg, nil)
	if err != nil {
		exitErr("initialize pipeline", err)
	}

	out := cmd.OutOrStdout()
	if quiet {
		out = nil
	}

	src := source.New(cfg.FeedbackSource, cfg.FeedbackColumn, cfg.IngestLimit)
	fmt.Fprintf(os.Stderr, "ingesting from %s\n", src.Location())

	ingester := jobs.NewIngester(src, proc, database, out)
	summary, err := ingester.Run(ctx)
	if err != nil {
		exitErr("ingest", err)
	}

	fmt.Fprintf(os.Stderr, "read %d, classified %d, stored %d, failed %d\n",
		summary.Read, summary.Classified, summary.Stored, summary.Failed)
}
