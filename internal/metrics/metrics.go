package metrics

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"feedbackanalysis/internal/models"
)

var (
	storedFeedbackDesc = prometheus.NewDesc(
		"feedback_stored_rows",
		"Stored feedback rows by area and label",
		[]string{"area", "label"},
		nil,
	)

	classifiedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_classified_total",
		Help: "Feedback items classified by sentiment class",
	}, []string{"class"})

	pipelineFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feedback_pipeline_failures_total",
		Help: "Feedback items excluded from a batch because processing failed",
	})

	inferenceDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feedback_inference_duration_seconds",
		Help:    "Sentiment model inference latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	storeWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_store_writes_total",
		Help: "Feedback row writes by outcome",
	}, []string{"outcome"})
)

// LabelCounter reads per-area label counts from storage.
type LabelCounter interface {
	LabelCounts(ctx context.Context) ([]models.LabelCount, error)
}

// FeedbackCollector is a custom Prometheus collector that reads stored
// feedback counts from the database on each scrape.
type FeedbackCollector struct {
	store LabelCounter
}

// NewFeedbackCollector creates a collector over store.
func NewFeedbackCollector(store LabelCounter) *FeedbackCollector {
	return &FeedbackCollector{store: store}
}

// Describe sends the metric descriptor to the channel.
func (c *FeedbackCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- storedFeedbackDesc
}

// Collect queries the database for label counts and emits them as gauges.
func (c *FeedbackCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := c.store.LabelCounts(ctx)
	if err != nil {
		slog.Error("failed to collect feedback metrics", "error", err)
		return
	}
	for _, lc := range counts {
		ch <- prometheus.MustNewConstMetric(
			storedFeedbackDesc,
			prometheus.GaugeValue,
			float64(lc.Count),
			lc.Area,
			lc.Label,
		)
	}
}

var registerOnce sync.Once

// Init registers the collector and pipeline metrics with reg.
// Must be called once at startup.
func Init(reg prometheus.Registerer, store LabelCounter) {
	registerOnce.Do(func() {
		reg.MustRegister(
			NewFeedbackCollector(store),
			classifiedTotal,
			pipelineFailuresTotal,
			inferenceDuration,
			storeWritesTotal,
		)
	})
}

// RecordClassified counts one successfully classified item.
func RecordClassified(class int) {
	classifiedTotal.WithLabelValues(strconv.Itoa(class)).Inc()
}

// RecordPipelineFailure counts one item dropped from a batch.
func RecordPipelineFailure() {
	pipelineFailuresTotal.Inc()
}

// ObserveInference records the latency of one model call.
func ObserveInference(d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	inferenceDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// RecordStoreWrite counts one feedback row write attempt.
func RecordStoreWrite(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	storeWritesTotal.WithLabelValues(outcome).Inc()
}
