package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"estatepulse/server/config"
	"estatepulse/server/internal/api"
	"estatepulse/server/internal/cache"
	"estatepulse/server/internal/database"
	"estatepulse/server/internal/ingest"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	dbPath := cfg.Database.Path
	if !filepath.IsAbs(dbPath) {
		currentDir, err := os.Getwd()
		if err != nil {
			logger.WithError(err).Fatal("Failed to get current directory")
		}
		dbPath = filepath.Join(currentDir, dbPath)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", dbPath)

	// Initialize database
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Open the gorm handle for the batch import path
	gormDB, err := database.OpenGorm(dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open import database connection")
	}

	// Wire the import pipeline and the KPI snapshot cache
	snapshots := cache.NewSnapshotCache(logger)
	queue := ingest.NewRecordQueue(cfg.BatchImport.QueueSize, logger)
	processor := ingest.NewImportProcessor(gormDB, queue, cfg, logger)
	processor.Invalidate = snapshots.Invalidate
	processor.Start()
	defer processor.Stop()

	// Initialize handler and router
	handler := api.NewHandler(db, cfg, queue, snapshots, logger)
	router := gin.Default()
	api.SetupRoutes(router, handler, cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Infof("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
