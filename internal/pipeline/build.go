package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"feedbackanalysis/internal/cluster"
	"feedbackanalysis/internal/config"
	"feedbackanalysis/internal/sentiment"
)

// FromConfig loads the cluster definitions and connects the sentiment model
// named by cfg. A nil predictor means the configured HTTP inference endpoint.
// Either failure is fatal for the caller.
func FromConfig(ctx context.Context, cfg *config.Config, predictor sentiment.Predictor) (*Pipeline, error) {
	clusters, err := cluster.LoadFile(cfg.ClustersFile)
	if err != nil {
		return nil, fmt.Errorf("load clusters: %w", err)
	}
	slog.Info("Loaded cluster definitions", "file", cfg.ClustersFile, "clusters", clusters.Names())

	if predictor == nil {
		predictor = sentiment.NewHTTPPredictor(cfg.ModelURL, cfg.ModelToken)
	}

	classifier, err := sentiment.NewClassifier(ctx, predictor, cfg.ModelTimeout)
	if err != nil {
		return nil, err
	}

	return New(classifier, clusters, cfg.PipelineWorkers), nil
}
