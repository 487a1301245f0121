package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"feedbackanalysis/internal/models"
)

// FeedbackReader provides the read-side aggregation queries.
type FeedbackReader interface {
	AllFeedback(ctx context.Context) ([]models.StoredFeedback, error)
	ChartData(ctx context.Context) ([]models.ChartRow, error)
	PieChartData(ctx context.Context) ([]models.PieRow, error)
}

// FeedbackHandler serves the chart and data endpoints. Failures return 500
// with the underlying error message.
type FeedbackHandler struct {
	store FeedbackReader
}

// NewFeedbackHandler creates a new API feedback handler.
func NewFeedbackHandler(store FeedbackReader) *FeedbackHandler {
	return &FeedbackHandler{store: store}
}

// AllData returns every stored feedback row.
func (h *FeedbackHandler) AllData(c fiber.Ctx) error {
	rows, err := h.store.AllFeedback(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []models.StoredFeedback{}
	}
	return c.JSON(rows)
}

// ChartData returns positive and negative counts per area.
func (h *FeedbackHandler) ChartData(c fiber.Ctx) error {
	rows, err := h.store.ChartData(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []models.ChartRow{}
	}
	return c.JSON(rows)
}

// PieChartData returns positive counts per area.
func (h *FeedbackHandler) PieChartData(c fiber.Ctx) error {
	rows, err := h.store.PieChartData(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []models.PieRow{}
	}
	return c.JSON(rows)
}
