package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"schoolfees-backend/internal/config"
	"schoolfees-backend/internal/events"
	"schoolfees-backend/internal/jobs"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository/postgres"
	"schoolfees-backend/internal/scheduler"
	"schoolfees-backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('reconcile-balances', 'send-due-reminders', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting School Fees Cronjob Runner...", "log_level", cfg.Log.Level)

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

	// Initialize Services
	bus := events.NewBus()
	defer bus.Close()

	emailService := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	balanceService := service.NewBalanceService(store.CollectionRepository, store.StudentRepository, bus)
	reminderService := service.NewReminderService(store.StudentRepository, emailService)

	jobRunner := jobs.NewJobRunner(&jobs.Services{
		Balance:  balanceService,
		Reminder: reminderService,
	}, cfg)

	// Run-once mode for manual execution and debugging
	if *runOnce != "" {
		switch *runOnce {
		case "reconcile-balances":
			jobRunner.ReconcileStudentBalances()
		case "send-due-reminders":
			jobRunner.SendDueReminders()
		case "all-nightly":
			jobRunner.RunAllNightlyJobs()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		logger.Info("Run-once execution finished", "job", *runOnce)
		return
	}

	// Scheduled mode
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down cronjob runner...")
	cronScheduler.Stop()
}
