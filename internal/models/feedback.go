package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Label constants for the persisted binary sentiment category.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
)

// Uncategorized is the only cluster assigned when no keyword matches.
const Uncategorized = "Uncategorized"

// PositiveThreshold is the lowest sentiment class labelled positive.
const PositiveThreshold = 3

// Sentiment classes run from 0 (most negative) to MaxSentimentClass (most positive).
const (
	MinSentimentClass = 0
	MaxSentimentClass = 4
	NumSentimentClass = MaxSentimentClass - MinSentimentClass + 1
)

// FeedbackRecord is the transient result of classifying one feedback text.
type FeedbackRecord struct {
	Text           string   `json:"text"`
	SentimentClass int      `json:"sentiment_class"`
	Clusters       []string `json:"clusters"` // Ordered by cluster definition order
}

// StoredFeedback is a persisted feedback row. Rows are append-only.
type StoredFeedback struct {
	ID        uuid.UUID `json:"id"`
	Area      string    `json:"area"`
	Points    int       `json:"points"`
	Label     string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// LabelFor derives the binary label from a sentiment class.
func LabelFor(sentimentClass int) string {
	if sentimentClass >= PositiveThreshold {
		return LabelPositive
	}
	return LabelNegative
}

// AreaFor joins a cluster set into its persisted form.
func AreaFor(clusters []string) string {
	return strings.Join(clusters, ", ")
}

// ToStored maps a pipeline result to the row that gets persisted.
func ToStored(r FeedbackRecord) StoredFeedback {
	return StoredFeedback{
		Area:   AreaFor(r.Clusters),
		Points: r.SentimentClass,
		Label:  LabelFor(r.SentimentClass),
	}
}

// ChartRow is one bar of the per-area bar chart.
type ChartRow struct {
	Area          string `json:"area"`
	PositiveCount int64  `json:"positive_count"`
	NegativeCount int64  `json:"negative_count"`
}

// Total returns the number of rows counted for the area.
func (r ChartRow) Total() int64 {
	return r.PositiveCount + r.NegativeCount
}

// PieRow is one slice of the positive-only pie chart.
type PieRow struct {
	Area          string `json:"area"`
	PositiveCount int64  `json:"positive_count"`
}

// LabelCount is a row count for one area and label.
type LabelCount struct {
	Area  string
	Label string
	Count int64
}
