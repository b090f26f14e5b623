package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"drivehub-backend/internal/config"
	"drivehub-backend/internal/events"
	"drivehub-backend/internal/jobs"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/repository/postgres"
	"drivehub-backend/internal/scheduler"
	"drivehub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'start-due-bookings', 'all-nightly', 'all-weekly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DriveHub Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Email and Event Dispatcher
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		cfg.Email.AdminEmail,
	)

	sinks := []events.Sink{
		events.NewNotificationSink(store.NotificationRepository),
		events.NewEmailSink(emailSvc),
	}
	if cfg.AMQP.URL != "" {
		realtime, err := events.NewRealtimePublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", "error", err)
			log.Fatalf("Failed to connect to AMQP broker: %v", err)
		}
		defer realtime.Close()
		sinks = append(sinks, realtime)
	}
	bus := events.NewDispatcher(sinks...)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, bus, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "start-due-bookings":
		jobRunner.StartDueBookings()
	case "complete-finished-bookings":
		jobRunner.CompleteFinishedBookings()
	case "purge-trashed-notifications":
		jobRunner.PurgeTrashedNotifications()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	case "all-weekly":
		jobRunner.RunAllWeeklyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - start-due-bookings\n")
		fmt.Printf("  - complete-finished-bookings\n")
		fmt.Printf("  - purge-trashed-notifications\n")
		fmt.Printf("  - all-nightly\n")
		fmt.Printf("  - all-weekly\n")
		os.Exit(1)
	}
}
