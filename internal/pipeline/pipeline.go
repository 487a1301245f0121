// Package pipeline classifies batches of feedback text into sentiment and clusters.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"feedbackanalysis/internal/metrics"
	"feedbackanalysis/internal/models"
)

// DefaultWorkers is the number of items classified concurrently.
const DefaultWorkers = 4

var ErrEmptyText = errors.New("feedback text is empty")

// Classifier assigns a sentiment class in [0,4] to text.
type Classifier interface {
	Classify(ctx context.Context, text string) (int, error)
}

// Identifier tags text with cluster names.
type Identifier interface {
	Identify(text string) []string
}

// Pipeline combines a Classifier and an Identifier. It holds no per-call state.
type Pipeline struct {
	classifier Classifier
	clusters   Identifier
	workers    int
}

// New creates a pipeline. workers <= 0 uses DefaultWorkers.
func New(classifier Classifier, clusters Identifier, workers int) *Pipeline {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pipeline{
		classifier: classifier,
		clusters:   clusters,
		workers:    workers,
	}
}

// ItemError records why one input item was excluded from a batch.
type ItemError struct {
	Index int
	Err   error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("feedback %d: %v", e.Index, e.Err)
}

func (e ItemError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a batch. Records keep input order with failed
// items removed.
type Result struct {
	Records  []models.FeedbackRecord
	Failures []ItemError
}

// ProcessOne classifies and clusters a single text.
func (p *Pipeline) ProcessOne(ctx context.Context, text string) (models.FeedbackRecord, error) {
	if strings.TrimSpace(text) == "" {
		return models.FeedbackRecord{}, ErrEmptyText
	}

	start := time.Now()
	class, err := p.classifier.Classify(ctx, text)
	metrics.ObserveInference(time.Since(start), err)
	if err != nil {
		return models.FeedbackRecord{}, err
	}

	return models.FeedbackRecord{
		Text:           text,
		SentimentClass: class,
		Clusters:       p.clusters.Identify(text),
	}, nil
}

// Process classifies every text and returns the records in input order.
// Items that fail are logged and left out.
func (p *Pipeline) Process(ctx context.Context, feedbacks []string) []models.FeedbackRecord {
	return p.ProcessDetailed(ctx, feedbacks).Records
}

// ProcessDetailed is Process that also reports the excluded items.
func (p *Pipeline) ProcessDetailed(ctx context.Context, feedbacks []string) Result {
	type slot struct {
		record models.FeedbackRecord
		err    error
	}
	slots := make([]slot, len(feedbacks))

	var g errgroup.Group
	g.SetLimit(p.workers)

	for i, text := range feedbacks {
		if err := ctx.Err(); err != nil {
			slots[i].err = err
			continue
		}
		g.Go(func() error {
			rec, err := p.ProcessOne(ctx, text)
			slots[i] = slot{record: rec, err: err}
			return nil
		})
	}
	g.Wait()

	result := Result{Records: make([]models.FeedbackRecord, 0, len(feedbacks))}
	for i, s := range slots {
		if s.err != nil {
			slog.Warn("skipping feedback item", "index", i, "error", s.err)
			metrics.RecordPipelineFailure()
			result.Failures = append(result.Failures, ItemError{Index: i, Err: s.err})
			continue
		}
		metrics.RecordClassified(s.record.SentimentClass)
		result.Records = append(result.Records, s.record)
	}

	return result
}
