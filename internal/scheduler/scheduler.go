package scheduler

import (
	"context"
	"fmt"
	"time"

	"GearValue/internal/domain/models"
	drepo "GearValue/internal/domain/repository"
	applogger "GearValue/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SnapshotTaker produces a valuation snapshot.
type SnapshotTaker interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

// Scheduler takes and publishes valuation snapshots on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	taker     SnapshotTaker
	publisher drepo.SnapshotPublisher
	timeout   time.Duration
	l         *applogger.Logger
}

// New creates a scheduler. Schedules use the six-field cron format with a
// leading seconds field.
func New(taker SnapshotTaker, publisher drepo.SnapshotPublisher, timeout time.Duration, l *applogger.Logger) *Scheduler {
	if l == nil {
		l = applogger.Nop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		taker:     taker,
		publisher: publisher,
		timeout:   timeout,
		l:         l,
	}
}

// Register adds the snapshot job. An empty schedule registers nothing.
func (s *Scheduler) Register(schedule string) error {
	if schedule == "" {
		s.l.Info("snapshot scheduler disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return fmt.Errorf("register snapshot job: %w", err)
	}
	s.l.Info("snapshot job registered", applogger.String("schedule", schedule))
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.l.Info("scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.l.Info("scheduler stopped")
}

// RunNow takes and publishes one snapshot immediately.
func (s *Scheduler) RunNow(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	snap, err := s.taker.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("take snapshot: %w", err)
	}
	if err := s.publisher.Publish(ctx, snap); err != nil {
		return err
	}
	s.l.Info("snapshot published",
		applogger.String("id", snap.ID),
		applogger.Int64("total", snap.Total),
	)
	return nil
}

func (s *Scheduler) tick() {
	if err := s.RunNow(context.Background()); err != nil {
		s.l.Error("snapshot job failed", applogger.Error(err))
	}
}
