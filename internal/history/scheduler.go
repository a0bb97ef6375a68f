package history

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	mdwerror "github.com/msto63/etds/foundation/core/error"
	mdwlog "github.com/msto63/etds/foundation/core/log"
)

// Scheduler prunes runs older than a retention period on a cron schedule
type Scheduler struct {
	store     *Store
	schedule  string
	retention time.Duration
	logger    *mdwlog.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewScheduler creates a scheduler for store. schedule is a standard
// five-field cron expression, e.g. "0 3 * * *" for daily at 03:00.
func NewScheduler(store *Store, schedule string, retention time.Duration, logger *mdwlog.Logger) *Scheduler {
	if logger == nil {
		logger = mdwlog.Discard()
	}
	return &Scheduler{
		store:     store,
		schedule:  schedule,
		retention: retention,
		logger:    logger.WithField("component", "history-scheduler"),
		cron:      cron.New(),
	}
}

// ValidateSchedule reports whether schedule is a usable cron expression
func ValidateSchedule(schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return mdwerror.Wrap(err, "invalid prune schedule "+schedule).
			WithCode(mdwerror.CodeConfigError)
	}
	return nil
}

// Start schedules pruning until ctx ends or Stop is called. An empty
// schedule leaves the scheduler idle.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Debug("prune schedule not configured")
		return nil
	}
	if s.running {
		return nil
	}
	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return mdwerror.Wrap(err, "failed to schedule pruning").WithCode(mdwerror.CodeConfigError)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("prune scheduler started", mdwlog.Fields{
		"schedule":  s.schedule,
		"retention": s.retention.String(),
	})

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// RunOnce prunes immediately and returns the number of removed runs
func (s *Scheduler) RunOnce(ctx context.Context) int64 {
	n, err := s.store.Prune(ctx, s.retention)
	if err != nil {
		s.logger.ErrorWithErr("scheduled pruning failed", err)
		return 0
	}
	s.logger.Debug("scheduled pruning completed", mdwlog.Fields{"removed": n})
	return n
}

// Stop halts the schedule and waits for a running prune to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("prune scheduler stopped")
}

// Running reports whether a schedule is active
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled prune, or false when idle
func (s *Scheduler) NextRun() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if !s.running || len(entries) == 0 {
		return time.Time{}, false
	}
	return entries[0].Next, true
}
