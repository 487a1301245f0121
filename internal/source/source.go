// Package source reads raw feedback text from a CSV file or URL.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"feedbackanalysis/internal/validation"
)

// DefaultColumn is the CSV header holding feedback text.
const DefaultColumn = "feedback"

var ErrNoFeedbackColumn = errors.New("feedback column not found")

// Reader loads feedback entries from a local path or an http(s) URL.
type Reader struct {
	location string
	column   string
	limit    int
	client   *http.Client
}

// New creates a reader. limit <= 0 reads every row.
func New(location, column string, limit int) *Reader {
	if column == "" {
		column = DefaultColumn
	}
	return &Reader{
		location: location,
		column:   column,
		limit:    limit,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Location returns where feedback is read from.
func (r *Reader) Location() string {
	return r.location
}

// Read returns up to limit non-blank feedback texts in file order.
func (r *Reader) Read(ctx context.Context) ([]string, error) {
	if r.location == "" {
		return nil, errors.New("no feedback source configured")
	}

	body, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ReadCSV(body, r.column, r.limit)
}

func (r *Reader) open(ctx context.Context) (io.ReadCloser, error) {
	if !validation.IsRemote(r.location) {
		f, err := os.Open(r.location)
		if err != nil {
			return nil, fmt.Errorf("failed to open feedback file: %w", err)
		}
		return f, nil
	}

	if valid, msg := validation.ValidateURL(r.location); !valid {
		return nil, fmt.Errorf("invalid feedback source url: %s", msg)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.location, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid feedback source url: %w", err)
	}
	req.Header.Set("User-Agent", "FeedbackAnalysis/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback source: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch feedback source: HTTP %s", resp.Status)
	}
	return resp.Body, nil
}

// ReadCSV extracts column from CSV input. The header match ignores case and
// surrounding whitespace. Blank cells are skipped and do not count toward limit.
func ReadCSV(in io.Reader, column string, limit int) ([]string, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrNoFeedbackColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback header: %w", err)
	}

	col := -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if strings.EqualFold(h, column) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoFeedbackColumn, column)
	}

	var feedbacks []string
	for limit <= 0 || len(feedbacks) < limit {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read feedback row: %w", err)
		}
		if col >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[col])
		if text == "" {
			continue
		}
		feedbacks = append(feedbacks, text)
	}

	return feedbacks, nil
}
