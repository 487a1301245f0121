package jobs

import (
	"context"
	"log"
	"time"
)

// Runner performs one ingestion pass.
type Runner interface {
	Run(ctx context.Context) (Summary, error)
}

// Scheduler runs ingestion in the background, once at start and then on an
// interval when one is set.
type Scheduler struct {
	runner   Runner
	interval time.Duration
}

// NewScheduler creates a scheduler. An interval <= 0 runs a single pass.
func NewScheduler(runner Runner, interval time.Duration) *Scheduler {
	return &Scheduler{runner: runner, interval: interval}
}

// Start begins the ingestion loop and blocks until ctx is done or, without an
// interval, the single pass has finished.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("Ingestion scheduler started (interval: %v)", s.interval)

	// Run immediately on start
	s.runOnce(ctx)

	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Ingestion scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	summary, err := s.runner.Run(ctx)
	if err != nil {
		log.Printf("Ingestion scheduler: run failed: %v", err)
		return
	}
	log.Printf("Ingestion scheduler: read %d, stored %d, failed %d", summary.Read, summary.Stored, summary.Failed)
}
