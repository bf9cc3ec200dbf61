package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler periodically re-polls the semester catalog. It does not warm
// the CSV cache; CSVs are built only when /api/v1/csv is requested.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cancel    context.CancelFunc
}

// NewScheduler creates a scheduler; it does not start until Start is
// called.
func NewScheduler() *Scheduler {
	_, cancel := context.WithCancel(context.Background())
	s := gocron.NewScheduler(time.UTC)
	s.TagsUnique()
	return &Scheduler{scheduler: s, cancel: cancel}
}

// Start begins running scheduled jobs asynchronously.
func (s *Scheduler) Start() { s.scheduler.StartAsync() }

// Stop halts the scheduler and releases its background context.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	if s.cancel != nil {
		s.cancel()
	}
}

// ScheduleRefresh runs refresh immediately and then every interval,
// logging (but not propagating) any error so one failed tick doesn't stop
// future ones.
func (s *Scheduler) ScheduleRefresh(interval time.Duration, refresh func(ctx context.Context) error) error {
	job := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := refresh(ctx); err != nil {
			slog.Error("scheduled catalog refresh failed", "error", err)
		}
	}
	job()
	_, err := s.scheduler.Every(interval).Tag("catalog-refresh").Do(job)
	return err
}
