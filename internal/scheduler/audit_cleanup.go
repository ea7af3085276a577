// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shialibrary/hadith-server/internal/config"
	"github.com/shialibrary/hadith-server/internal/tasks"
)

// AuditCleanupScheduler enqueues an audit-file cleanup task on a cron
// schedule. The deletion itself runs on the task queue so retries and logging
// follow the same path as every other background job.
type AuditCleanupScheduler struct {
	enqueue func(task tasks.CleanupAuditFilesTask) error
	config  config.Audit

	cron       cron.EntryID
	scheduler  *cron.Cron
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a new scheduler. The enqueue function is
// typically a thin wrapper around the task client's Add.
func NewAuditCleanupScheduler(enqueue func(task tasks.CleanupAuditFilesTask) error, cfg config.Audit) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		enqueue: enqueue,
		config:  cfg,
		scheduler: cron.New(cron.WithParser(cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
		))),
	}
}

// Start begins the scheduler.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	schedule := s.config.CleanupSchedule
	if schedule == "" {
		log.Printf("Audit cleanup scheduler: no schedule configured, disabled")
		return nil
	}

	entryID, err := s.scheduler.AddFunc(schedule, func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	s.cron = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.scheduler.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s' (retention %d days)",
		schedule, s.config.RetentionDays)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.scheduler.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Audit cleanup scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next cleanup will be enqueued.
func (s *AuditCleanupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.scheduler.Entries() {
		if entry.ID == s.cron {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunNow enqueues a cleanup immediately.
func (s *AuditCleanupScheduler) RunNow() error {
	return s.enqueue(tasks.CleanupAuditFilesTask{RetentionDays: s.config.RetentionDays})
}

func (s *AuditCleanupScheduler) runCleanup() {
	if err := s.enqueue(tasks.CleanupAuditFilesTask{RetentionDays: s.config.RetentionDays}); err != nil {
		log.Printf("Audit cleanup: failed to enqueue task: %v", err)
	}
}
