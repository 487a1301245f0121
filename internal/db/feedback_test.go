package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"feedbackanalysis/internal/models"
)

func insertRecords(t *testing.T, d *DB, records []models.FeedbackRecord) {
	t.Helper()
	for _, r := range records {
		row := models.ToStored(r)
		if err := d.InsertFeedback(context.Background(), &row); err != nil {
			t.Fatalf("InsertFeedback() error = %v", err)
		}
	}
}

func TestInsertFeedback(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	row := models.ToStored(models.FeedbackRecord{
		Text:           "great service, fast luggage",
		SentimentClass: 4,
		Clusters:       []string{"Service", "Luggage"},
	})
	if err := db.InsertFeedback(context.Background(), &row); err != nil {
		t.Fatalf("InsertFeedback() error = %v", err)
	}
	if row.ID == uuid.Nil {
		t.Error("InsertFeedback() did not set ID")
	}
	if row.CreatedAt.IsZero() {
		t.Error("InsertFeedback() did not set CreatedAt")
	}

	all, err := db.AllFeedback(context.Background())
	if err != nil {
		t.Fatalf("AllFeedback() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("AllFeedback() returned %d rows, want 1", len(all))
	}
	if all[0].Area != "Service, Luggage" || all[0].Points != 4 || all[0].Label != models.LabelPositive {
		t.Errorf("AllFeedback()[0] = %+v", all[0])
	}
}

func TestInsertFeedback_Invalid(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	bad := []models.StoredFeedback{
		{Area: "Food", Points: 5, Label: models.LabelPositive},
		{Area: "Food", Points: 2, Label: "neutral"},
	}
	for _, row := range bad {
		if err := db.InsertFeedback(context.Background(), &row); !errors.Is(err, ErrInvalidFeedback) {
			t.Errorf("InsertFeedback(%+v) error = %v, want ErrInvalidFeedback", row, err)
		}
	}
}

func TestChartData_RoundTrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	insertRecords(t, db, []models.FeedbackRecord{
		{SentimentClass: 4, Clusters: []string{"Service"}},
		{SentimentClass: 3, Clusters: []string{"Service"}},
		{SentimentClass: 2, Clusters: []string{"Service"}},
		{SentimentClass: 0, Clusters: []string{"Luggage"}},
		{SentimentClass: 4, Clusters: []string{"Service", "Luggage"}},
	})

	chart, err := db.ChartData(context.Background())
	if err != nil {
		t.Fatalf("ChartData() error = %v", err)
	}

	expected := map[string]models.ChartRow{
		"Luggage":          {Area: "Luggage", PositiveCount: 0, NegativeCount: 1},
		"Service":          {Area: "Service", PositiveCount: 2, NegativeCount: 1},
		"Service, Luggage": {Area: "Service, Luggage", PositiveCount: 1, NegativeCount: 0},
	}
	if len(chart) != len(expected) {
		t.Fatalf("ChartData() returned %d rows, want %d", len(chart), len(expected))
	}

	var total int64
	for _, row := range chart {
		want, ok := expected[row.Area]
		if !ok {
			t.Errorf("unexpected area %q", row.Area)
			continue
		}
		if row != want {
			t.Errorf("ChartData() row = %+v, want %+v", row, want)
		}
		total += row.Total()
	}
	if total != 5 {
		t.Errorf("sum of counts = %d, want 5", total)
	}
}

func TestPieChartData(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	insertRecords(t, db, []models.FeedbackRecord{
		{SentimentClass: 4, Clusters: []string{"Food"}},
		{SentimentClass: 3, Clusters: []string{"Food"}},
		{SentimentClass: 1, Clusters: []string{"Seat"}},
	})

	pie, err := db.PieChartData(context.Background())
	if err != nil {
		t.Fatalf("PieChartData() error = %v", err)
	}
	if len(pie) != 1 {
		t.Fatalf("PieChartData() returned %d rows, want 1", len(pie))
	}
	if pie[0].Area != "Food" || pie[0].PositiveCount != 2 {
		t.Errorf("PieChartData()[0] = %+v, want Food/2", pie[0])
	}
}

func TestAggregates_Empty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	chart, err := db.ChartData(ctx)
	if err != nil {
		t.Fatalf("ChartData() error = %v", err)
	}
	if chart == nil || len(chart) != 0 {
		t.Errorf("ChartData() = %v, want empty non-nil slice", chart)
	}

	pie, err := db.PieChartData(ctx)
	if err != nil {
		t.Fatalf("PieChartData() error = %v", err)
	}
	if pie == nil || len(pie) != 0 {
		t.Errorf("PieChartData() = %v, want empty non-nil slice", pie)
	}
}

func TestLabelCounts(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	insertRecords(t, db, []models.FeedbackRecord{
		{SentimentClass: 4, Clusters: []string{"Food"}},
		{SentimentClass: 0, Clusters: []string{"Food"}},
		{SentimentClass: 0, Clusters: []string{"Food"}},
	})

	counts, err := db.LabelCounts(context.Background())
	if err != nil {
		t.Fatalf("LabelCounts() error = %v", err)
	}

	got := map[string]int64{}
	for _, c := range counts {
		got[c.Area+"/"+c.Label] = c.Count
	}
	if got["Food/positive"] != 1 || got["Food/negative"] != 2 {
		t.Errorf("LabelCounts() = %v", got)
	}
}

func TestSeedDevFeedback(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := db.SeedDevFeedback(ctx); err != nil {
		t.Fatalf("SeedDevFeedback() error = %v", err)
	}
	first, _ := db.AllFeedback(ctx)

	// Second call is a no-op
	if err := db.SeedDevFeedback(ctx); err != nil {
		t.Fatalf("SeedDevFeedback() second call error = %v", err)
	}
	second, _ := db.AllFeedback(ctx)

	if len(first) == 0 || len(first) != len(second) {
		t.Errorf("seeded %d rows then %d rows", len(first), len(second))
	}
}
