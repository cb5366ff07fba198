package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/robfig/cron/v3"

	"github.com/couchcryptid/table-facts/internal/domain"
	"github.com/couchcryptid/table-facts/internal/observability"
)

const maxPublishAttempts = 5

// Analyzer produces a fresh report.
type Analyzer interface {
	Analyze(ctx context.Context) (domain.Report, error)
}

// Publisher delivers a report downstream.
type Publisher interface {
	Publish(ctx context.Context, report domain.Report) error
}

// Service keeps the latest report current and optionally publishes each new one.
type Service struct {
	analyzer  Analyzer
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	latest    atomic.Pointer[domain.Report]
}

// New creates a Service. Pass a nil publisher to disable publishing.
func New(a Analyzer, p Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		analyzer:  a,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a report is available.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.latest.Load() == nil {
		return errors.New("no report has been produced yet")
	}
	return nil
}

// Latest returns the most recent report, if any.
func (s *Service) Latest() (domain.Report, bool) {
	r := s.latest.Load()
	if r == nil {
		return domain.Report{}, false
	}
	return *r, true
}

// Refresh runs one analysis. On success the report replaces the previous one
// and is published; on failure the previous report stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	report, err := s.analyzer.Analyze(ctx)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	s.latest.Store(&report)

	if s.publisher == nil {
		return nil
	}
	return s.publish(ctx, report)
}

// Run refreshes once immediately, then on every tick of schedule until the
// context is cancelled.
func (s *Service) Run(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() { s.refreshAndLog(ctx) }); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}

	s.logger.Info("scheduler started", "schedule", schedule)
	s.metrics.SchedulerRunning.Set(1)
	defer s.metrics.SchedulerRunning.Set(0)

	s.refreshAndLog(ctx)
	c.Start()

	<-ctx.Done()
	s.logger.Info("scheduler stopping", "reason", ctx.Err())
	<-c.Stop().Done()
	return nil
}

func (s *Service) refreshAndLog(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.Refresh(ctx); err != nil {
		s.logger.Error("refresh failed", "error", err)
	}
}

// publish retries with exponential backoff: start at 200ms, double each
// retry, cap at 5s, give up after maxPublishAttempts.
func (s *Service) publish(ctx context.Context, report domain.Report) error {
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	var err error
	for attempt := 1; attempt <= maxPublishAttempts; attempt++ {
		if err = s.publisher.Publish(ctx, report); err == nil {
			s.metrics.ReportsPublished.Inc()
			return nil
		}
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("publish failed", "error", err, "report_id", report.ID, "attempt", attempt)

		if attempt == maxPublishAttempts || !retry.SleepWithContext(ctx, backoff) {
			break
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
	return fmt.Errorf("publish report %s: %w", report.ID, err)
}
