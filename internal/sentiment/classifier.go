// Package sentiment turns feedback text into a 5-class ordinal sentiment score
// using an external pretrained text classifier.
package sentiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"feedbackanalysis/internal/models"
)

var (
	ErrClassifierUnavailable = errors.New("sentiment classifier unavailable")
	ErrBadDistribution       = errors.New("classifier returned a malformed distribution")
)

// DefaultTimeout bounds a single inference call.
const DefaultTimeout = 30 * time.Second

// Predictor is an external model producing scores over the sentiment classes,
// index 0 being the most negative.
type Predictor interface {
	Predict(ctx context.Context, text string) ([]float64, error)
}

// Pinger is implemented by predictors that can check readiness up front.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PredictorFunc adapts a function to the Predictor interface.
type PredictorFunc func(ctx context.Context, text string) ([]float64, error)

// Predict calls f.
func (f PredictorFunc) Predict(ctx context.Context, text string) ([]float64, error) {
	return f(ctx, text)
}

// Classifier wraps a Predictor. It holds no mutable state and is safe to share.
type Classifier struct {
	predictor Predictor
	timeout   time.Duration
}

// NewClassifier creates a classifier. If the predictor supports Ping it is
// checked immediately and failure is reported as ErrClassifierUnavailable.
func NewClassifier(ctx context.Context, p Predictor, timeout time.Duration) (*Classifier, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no predictor configured", ErrClassifierUnavailable)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if pinger, ok := p.(Pinger); ok {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := pinger.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
		}
	}

	return &Classifier{predictor: p, timeout: timeout}, nil
}

// Classify returns the sentiment class in [0,4] for text.
func (c *Classifier) Classify(ctx context.Context, text string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dist, err := c.predictor.Predict(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
	}
	if len(dist) != models.NumSentimentClass {
		return 0, fmt.Errorf("%w: got %d classes, want %d", ErrBadDistribution, len(dist), models.NumSentimentClass)
	}
	for i, v := range dist {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: class %d score is %v", ErrBadDistribution, i, v)
		}
	}

	return Argmax(dist), nil
}

// Argmax returns the index of the largest value. Ties go to the lowest index.
func Argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
