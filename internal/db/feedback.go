package db

import (
	"context"
	"fmt"

	"feedbackanalysis/internal/models"
)

// InsertFeedback appends one stored feedback row and fills in its ID and
// creation time. Rows are never updated or deleted.
func (d *DB) InsertFeedback(ctx context.Context, f *models.StoredFeedback) error {
	if f.Points < models.MinSentimentClass || f.Points > models.MaxSentimentClass {
		return fmt.Errorf("%w: points %d out of range", ErrInvalidFeedback, f.Points)
	}
	if f.Label != models.LabelPositive && f.Label != models.LabelNegative {
		return fmt.Errorf("%w: label %q", ErrInvalidFeedback, f.Label)
	}

	query := `
		INSERT INTO feedbacksentimate (area, points, type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	return d.Pool.QueryRow(ctx, query, f.Area, f.Points, f.Label).Scan(&f.ID, &f.CreatedAt)
}

// AllFeedback returns every stored feedback row, oldest first.
func (d *DB) AllFeedback(ctx context.Context) ([]models.StoredFeedback, error) {
	query := `
		SELECT id, area, points, type, created_at
		FROM feedbacksentimate
		ORDER BY created_at ASC, id ASC
	`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feedback := []models.StoredFeedback{}
	for rows.Next() {
		var f models.StoredFeedback
		if err := rows.Scan(&f.ID, &f.Area, &f.Points, &f.Label, &f.CreatedAt); err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}

	return feedback, rows.Err()
}

// ChartData returns positive and negative counts grouped by area.
func (d *DB) ChartData(ctx context.Context) ([]models.ChartRow, error) {
	query := `
		SELECT area,
			COUNT(*) FILTER (WHERE type = 'positive') AS positive_count,
			COUNT(*) FILTER (WHERE type = 'negative') AS negative_count
		FROM feedbacksentimate
		GROUP BY area
		ORDER BY area ASC
	`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chart := []models.ChartRow{}
	for rows.Next() {
		var r models.ChartRow
		if err := rows.Scan(&r.Area, &r.PositiveCount, &r.NegativeCount); err != nil {
			return nil, err
		}
		chart = append(chart, r)
	}

	return chart, rows.Err()
}

// PieChartData returns positive counts grouped by area. Areas without any
// positive rows are omitted.
func (d *DB) PieChartData(ctx context.Context) ([]models.PieRow, error) {
	query := `
		SELECT area, COUNT(*) AS positive_count
		FROM feedbacksentimate
		WHERE type = 'positive'
		GROUP BY area
		ORDER BY area ASC
	`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pie := []models.PieRow{}
	for rows.Next() {
		var r models.PieRow
		if err := rows.Scan(&r.Area, &r.PositiveCount); err != nil {
			return nil, err
		}
		pie = append(pie, r)
	}

	return pie, rows.Err()
}

// LabelCounts returns row counts for each area and label, for metrics export.
func (d *DB) LabelCounts(ctx context.Context) ([]models.LabelCount, error) {
	rows, err := d.Pool.Query(ctx, `SELECT area, type, COUNT(*) FROM feedbacksentimate GROUP BY area, type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.LabelCount
	for rows.Next() {
		var lc models.LabelCount
		if err := rows.Scan(&lc.Area, &lc.Label, &lc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, lc)
	}
	return counts, rows.Err()
}
