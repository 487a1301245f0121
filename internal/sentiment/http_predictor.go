package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"feedbackanalysis/internal/models"
)

// HTTPPredictor calls a text-classification inference endpoint that speaks the
// Hugging Face inference protocol, e.g. one serving
// nlptown/bert-base-multilingual-uncased-sentiment.
//
//	POST {"inputs": "..."}  ->  [[{"label": "5 stars", "score": 0.91}, ...]]
type HTTPPredictor struct {
	url    string
	token  string
	client *http.Client
}

type inferenceRequest struct {
	Inputs  string         `json:"inputs"`
	Options map[string]any `json:"options,omitempty"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewHTTPPredictor creates a predictor for the endpoint at url. token is sent
// as a bearer token when non-empty.
func NewHTTPPredictor(url, token string) *HTTPPredictor {
	return &HTTPPredictor{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Predict returns the class scores for text, indexed by sentiment class.
func (p *HTTPPredictor) Predict(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(inferenceRequest{
		Inputs:  text,
		Options: map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invalid model url: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "FeedbackAnalysis/1.0")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	scores, err := decodeScores(raw)
	if err != nil {
		return nil, err
	}
	return toDistribution(scores)
}

// Ping sends a short probe text and checks that a usable distribution comes back.
func (p *HTTPPredictor) Ping(ctx context.Context) error {
	_, err := p.Predict(ctx, "ok")
	return err
}

// decodeScores accepts both the batched [[...]] and flat [...] response shapes.
func decodeScores(raw []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, fmt.Errorf("%w: empty response", ErrBadDistribution)
		}
		return nested[0], nil
	}

	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDistribution, err)
	}
	return flat, nil
}

var (
	starLabel  = regexp.MustCompile(`^(\d+)\s*stars?$`)
	indexLabel = regexp.MustCompile(`^label_(\d+)$`)
)

// classIndex maps a model label to its sentiment class.
// "1 star".."5 stars" map to 0..4, "LABEL_k" maps to k.
func classIndex(label string) (int, error) {
	l := strings.ToLower(strings.TrimSpace(label))

	if m := starLabel.FindStringSubmatch(l); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n - 1, nil
	}
	if m := indexLabel.FindStringSubmatch(l); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, nil
	}
	return 0, fmt.Errorf("%w: unknown label %q", ErrBadDistribution, label)
}

func toDistribution(scores []labelScore) ([]float64, error) {
	dist := make([]float64, models.NumSentimentClass)
	seen := make([]bool, models.NumSentimentClass)

	for _, s := range scores {
		idx, err := classIndex(s.Label)
		if err != nil {
			return nil, err
		}
		if idx < models.MinSentimentClass || idx > models.MaxSentimentClass {
			return nil, fmt.Errorf("%w: label %q out of range", ErrBadDistribution, s.Label)
		}
		dist[idx] = s.Score
		seen[idx] = true
	}

	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("%w: missing score for class %d", ErrBadDistribution, i)
		}
	}
	return dist, nil
}
