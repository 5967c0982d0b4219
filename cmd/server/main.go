package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"metaed/internal/config"
	"metaed/internal/http"
	"metaed/internal/schema"
	"metaed/internal/service"
	"metaed/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	recordRepo := storage.NewRecordRepo(db)
	registry := schema.NewRegistry(cfg.SchemaDir)
	slog.Info("Schema registry ready", "dir", cfg.SchemaDir)

	metadataService := service.NewMetadataService(recordRepo, registry)

	deps := &http.Deps{
		MetadataService: metadataService,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting metadata service", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Metadata service failed to start: %v", err)
	}
}
