package jobs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"feedbackanalysis/internal/metrics"
	"feedbackanalysis/internal/models"
	"feedbackanalysis/internal/pipeline"
)

// FeedbackSource supplies raw feedback texts.
type FeedbackSource interface {
	Read(ctx context.Context) ([]string, error)
}

// Processor classifies a batch of texts.
type Processor interface {
	ProcessDetailed(ctx context.Context, feedbacks []string) pipeline.Result
}

// FeedbackStore appends stored feedback rows.
type FeedbackStore interface {
	InsertFeedback(ctx context.Context, f *models.StoredFeedback) error
}

// Summary describes one ingestion run.
type Summary struct {
	Read       int
	Classified int
	Stored     int
	Failed     int // items dropped by the pipeline plus failed writes
}

// Ingester reads feedback, classifies it and persists each result.
type Ingester struct {
	source FeedbackSource
	proc   Processor
	store  FeedbackStore
	out    io.Writer
}

// NewIngester creates an ingester. If out is non-nil every result is printed to it.
func NewIngester(source FeedbackSource, proc Processor, store FeedbackStore, out io.Writer) *Ingester {
	return &Ingester{source: source, proc: proc, store: store, out: out}
}

// Run performs one ingestion pass. Only a source failure aborts the run;
// per-item classification and write failures are logged and counted.
func (i *Ingester) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	feedbacks, err := i.source.Read(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to read feedback: %w", err)
	}
	summary.Read = len(feedbacks)
	slog.Info("ingest: feedback loaded", "count", len(feedbacks))

	result := i.proc.ProcessDetailed(ctx, feedbacks)
	summary.Classified = len(result.Records)
	summary.Failed = len(result.Failures)

	for _, rec := range result.Records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		i.print(rec)

		row := models.ToStored(rec)
		err := i.store.InsertFeedback(ctx, &row)
		metrics.RecordStoreWrite(err)
		if err != nil {
			slog.Error("ingest: failed to store feedback", "area", row.Area, "points", row.Points, "error", err)
			summary.Failed++
			continue
		}
		summary.Stored++
	}

	slog.Info("ingest: run complete",
		"read", summary.Read,
		"classified", summary.Classified,
		"stored", summary.Stored,
		"failed", summary.Failed,
	)
	return summary, nil
}

func (i *Ingester) print(rec models.FeedbackRecord) {
	if i.out == nil {
		return
	}
	fmt.Fprintf(i.out, "Feedback Text: %s\n", rec.Text)
	fmt.Fprintf(i.out, "Predicted Sentiment Class: %d\n", rec.SentimentClass)
	fmt.Fprintf(i.out, "Identified Clusters: %s\n", strings.Join(rec.Clusters, ", "))
	fmt.Fprintf(i.out, "\n%s\n\n", strings.Repeat("=", 50))
}
