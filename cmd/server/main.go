package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "drivehub-backend/internal/api/http"
	"drivehub-backend/internal/config"
	"drivehub-backend/internal/events"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/repository/postgres"
	"drivehub-backend/internal/security"
	"drivehub-backend/internal/service"
	"drivehub-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting DriveHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
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

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Storage Service
	mediaStore, err := storage.NewLocalStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize media storage", "error", err)
		log.Fatalf("Failed to initialize media storage: %v", err)
	}
	logger.Info("Using local media storage", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
		cfg.Email.AdminEmail,
	)

	// Initialize Event Dispatcher
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
		logger.Info("Realtime notifications enabled", "exchange", cfg.AMQP.Exchange)
	}
	bus := events.NewDispatcher(sinks...)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	txSvc := service.NewTransactionService(store.TransactionRepository, store.BookingRepository)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.UserRepository,
		store,
		bus,
		cfg.Booking.FixedFeeCents,
		cfg.Booking.MaxModifications,
	)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Booking:      httpapi.NewBookingHandler(bookingSvc),
		Vehicle:      httpapi.NewVehicleHandler(vehicleSvc),
		Notification: httpapi.NewNotificationHandler(noteSvc),
		Transaction:  httpapi.NewTransactionHandler(txSvc),
		Media:        httpapi.NewMediaHandler(mediaStore, cfg.Storage.MaxFileSizeMB),
	}

	router := httpapi.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
