package api

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"feedbackanalysis/internal/models"
	"feedbackanalysis/internal/validation"
)

// TextProcessor classifies and clusters a single text.
type TextProcessor interface {
	ProcessOne(ctx context.Context, text string) (models.FeedbackRecord, error)
}

// ClassifyHandler runs the pipeline on one text without persisting it.
type ClassifyHandler struct {
	proc TextProcessor
}

// NewClassifyHandler creates a new API classify handler.
func NewClassifyHandler(proc TextProcessor) *ClassifyHandler {
	return &ClassifyHandler{proc: proc}
}

type classifyResponse struct {
	Text           string   `json:"text"`
	SentimentClass int      `json:"sentiment_class"`
	Clusters       []string `json:"clusters"`
	Area           string   `json:"area"`
	Type           string   `json:"type"`
}

// Classify returns the sentiment class, clusters and derived label for {text}.
func (h *ClassifyHandler) Classify(c fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateFeedbackText(body.Text); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	rec, err := h.proc.ProcessOne(c.Context(), body.Text)
	if err != nil {
		slog.Warn("classification failed", "error", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "classification failed")
	}

	stored := models.ToStored(rec)
	return c.JSON(classifyResponse{
		Text:           rec.Text,
		SentimentClass: rec.SentimentClass,
		Clusters:       rec.Clusters,
		Area:           stored.Area,
		Type:           stored.Label,
	})
}
