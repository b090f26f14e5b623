package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"drivehub-backend/internal/jobs"
	"drivehub-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Start bookings whose rental period begins today
	_, err := s.cron.AddFunc(cfg.StartDueBookings, s.jobs.StartDueBookings)
	if err != nil {
		logger.Error("Failed to register StartDueBookings job", "error", err)
	}

	// Complete bookings whose rental period has ended
	_, err = s.cron.AddFunc(cfg.CompleteFinishedBookings, s.jobs.CompleteFinishedBookings)
	if err != nil {
		logger.Error("Failed to register CompleteFinishedBookings job", "error", err)
	}

	// Weekly notification cleanup
	_, err = s.cron.AddFunc(cfg.PurgeTrashedNotifications, s.jobs.PurgeTrashedNotifications)
	if err != nil {
		logger.Error("Failed to register PurgeTrashedNotifications job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
