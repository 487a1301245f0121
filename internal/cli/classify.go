package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"feedbackanalysis/internal/models"
	"feedbackanalysis/internal/pipeline"
)

func init() {
	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify one piece of feedback without storing it",
		Args:  cobra.MinimumNArgs(1),
		Run:   runClassify,
	}

	cmd.Flags().Bool("json", false, "Print the result as JSON")

	RootCmd.AddCommand(cmd)
}

type classifyOutput struct {
	Text           string   `json:"text"`
	SentimentClass int      `json:"sentiment_class"`
	Clusters       []string `json:"clusters"`
	Area           string   `json:"area"`
	Label          string   `json:"type"`
}

func runClassify(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")
	text := strings.Join(args, " ")

	cfg := loadConfig()
	ctx := cmd.Context()

	proc, err := pipeline.FromConfig(ctx, cfg, nil)
	if err != nil {
		exitErr("initialize pipeline", err)
	}

	rec, err := proc.ProcessOne(ctx, text)
	if err != nil {
		exitErr("classify", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		row := models.ToStored(rec)
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.Encode(classifyOutput{
			Text:           rec.Text,
			SentimentClass: rec.SentimentClass,
			Clusters:       rec.Clusters,
			Area:           row.Area,
			Label:          row.Label,
		})
		return
	}

	fmt.Fprintf(out, "Predicted Sentiment Class: %d (%s)\n", rec.SentimentClass, models.LabelFor(rec.SentimentClass))
	fmt.Fprintf(out, "Identified Clusters: %s\n", models.AreaFor(rec.Clusters))
}
