package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"feedbackanalysis/internal/models"
)

// ChartSource provides per-area bar chart rows.
type ChartSource interface {
	ChartData(ctx context.Context) ([]models.ChartRow, error)
}

// DashboardHandler renders the HTML summary page.
type DashboardHandler struct {
	store ChartSource
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(store ChartSource) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// Index renders per-area positive and negative counts.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	rows, err := h.store.ChartData(c.Context())
	if err != nil {
		return err
	}

	var positive, negative int64
	for _, r := range rows {
		positive += r.PositiveCount
		negative += r.NegativeCount
	}

	return c.Render("dashboard", fiber.Map{
		"Title":    "Dashboard",
		"Rows":     rows,
		"Total":    positive + negative,
		"Positive": positive,
		"Negative": negative,
	})
}
