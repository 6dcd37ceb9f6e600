package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "schoolfees-backend/internal/api/http"
	"schoolfees-backend/internal/config"
	"schoolfees-backend/internal/events"
	"schoolfees-backend/internal/jobs"
	"schoolfees-backend/internal/logger"
	"schoolfees-backend/internal/repository"
	"schoolfees-backend/internal/repository/memory"
	"schoolfees-backend/internal/repository/postgres"
	"schoolfees-backend/internal/scheduler"
	"schoolfees-backend/internal/seed"
	"schoolfees-backend/internal/service"
)

// ledgerStore is the full repository surface the server wires services onto.
// Both the postgres and the in-memory store populate it.
type ledgerStore struct {
	repository.FeeTypeRepository
	repository.FeeLabelRepository
	repository.DiscountRepository
	repository.CollectionRepository
	repository.StudentRepository
}

func main() {
	// Load .env if present; real env vars still win inside config.Load
	_ = godotenv.Load()

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
	logger.Info("Starting School Fees Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Storage configuration", "type", cfg.Storage.Type)

	// Initialize Store
	var store ledgerStore
	switch cfg.Storage.Type {
	case "memory":
		logger.Info("Using in-memory store")
		s := memory.NewStore()
		store = ledgerStore{
			FeeTypeRepository:    s.FeeTypeRepository,
			FeeLabelRepository:   s.FeeLabelRepository,
			DiscountRepository:   s.DiscountRepository,
			CollectionRepository: s.CollectionRepository,
			StudentRepository:    s.StudentRepository,
		}
	default:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")
		s := postgres.NewStore(db)
		store = ledgerStore{
			FeeTypeRepository:    s.FeeTypeRepository,
			FeeLabelRepository:   s.FeeLabelRepository,
			DiscountRepository:   s.DiscountRepository,
			CollectionRepository: s.CollectionRepository,
			StudentRepository:    s.StudentRepository,
		}
	}

	// Seed empty tables
	dataset := seed.Default()
	if cfg.Storage.SeedFile != "" {
		dataset, err = seed.LoadFile(cfg.Storage.SeedFile)
		if err != nil {
			log.Fatalf("Failed to load seed file: %v", err)
		}
	}
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	err = seed.Initialize(seedCtx, seed.Stores{
		FeeTypes:  store.FeeTypeRepository,
		FeeLabels: store.FeeLabelRepository,
		Discounts: store.DiscountRepository,
		Students:  store.StudentRepository,
	}, dataset)
	cancelSeed()
	if err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	// Initialize notification bus
	bus := events.NewBus()
	defer bus.Close()

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	catalogService := service.NewCatalogService(store.FeeTypeRepository, store.FeeLabelRepository, bus)
	discountService := service.NewDiscountService(store.DiscountRepository, bus, service.TieBreakPolicy(cfg.Ledger.DiscountTieBreak))
	balanceService := service.NewBalanceService(store.CollectionRepository, store.StudentRepository, bus)
	collectionService := service.NewCollectionService(
		store.CollectionRepository,
		store.StudentRepository,
		catalogService,
		discountService,
		balanceService,
		emailService,
		bus,
		cfg.Ledger.SendReceipts,
	)
	reminderService := service.NewReminderService(store.StudentRepository, emailService)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(&jobs.Services{
		Balance:  balanceService,
		Reminder: reminderService,
	}, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Initialize HTTP server
	router := httpapi.NewRouter(
		collectionService,
		discountService,
		catalogService,
		balanceService,
		store.StudentRepository,
		bus,
	)
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // the SSE stream stays open indefinitely
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
