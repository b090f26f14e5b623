package jobs

import (
	"database/sql"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/events"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db     *sql.DB
	store  *postgres.Store
	bus    events.Bus
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, bus events.Bus, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		store:  store,
		bus:    bus,
		config: cfg,
	}
}

// Config exposes the runner's configuration for schedule registration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.StartDueBookings()
	jr.CompleteFinishedBookings()
}

// RunAllWeeklyJobs runs all weekly jobs (for manual execution)
func (jr *JobRunner) RunAllWeeklyJobs() {
	jr.PurgeTrashedNotifications()
}
