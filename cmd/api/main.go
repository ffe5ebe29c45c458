package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diabetes-ai/internal/config"
	"diabetes-ai/internal/corpus"
	"diabetes-ai/internal/dose"
	"diabetes-ai/internal/http"
	"diabetes-ai/internal/knowledge"
	"diabetes-ai/internal/medical"
	"diabetes-ai/internal/nlp"
	"diabetes-ai/internal/qa"
	"diabetes-ai/internal/search"
	"diabetes-ai/internal/service"
	"diabetes-ai/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(cfg.NewLogHandler(os.Stdout)))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	tables, err := loadTables(cfg.KnowledgeDir)
	if err != nil {
		log.Fatalf("Failed to load knowledge tables: %v", err)
	}
	slog.Info("Knowledge tables loaded", "topics", len(tables.Topics), "override", cfg.KnowledgeDir)

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

	patientRepo := storage.NewPatientRepo(db)
	predictionRepo := storage.NewPredictionRepo(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := corpus.LoadDir(ctx, cfg.DataDir, corpus.DefaultSources)
	stats := c.Statistics()
	slog.Info("Corpus loaded", "records", stats.TotalRecords, "sources", stats.UniqueSources, "dir", cfg.DataDir)

	engine := search.NewEngine(c, cfg.SearchWorkers)

	opts := []qa.Option{qa.WithThreshold(cfg.SearchThreshold)}
	if cfg.AnswerCacheSize > 0 {
		opts = append(opts, qa.WithCache(cfg.AnswerCacheSize, cfg.AnswerCacheTTL))
	}
	orchestrator := qa.New(tables, engine, c, opts...)
	reference := medical.New(tables)

	assistant := service.NewAssistantService(service.AssistantDeps{
		Answerer:    orchestrator,
		Extractor:   nlp.NewProcessor(tables),
		Predictor:   dose.RulePredictor{},
		Advisor:     reference,
		Tables:      tables,
		Patients:    patientRepo,
		Predictions: predictionRepo,
		Threshold:   cfg.SearchThreshold,
	})
	patients := service.NewPatientService(patientRepo, predictionRepo)

	router := http.NewRouter(&http.Deps{
		Assistant: assistant,
		Patients:  patients,
		Search:    engine,
		Corpus:    c,
		Medical:   reference,
		DB:        db,
	})

	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
}

// loadTables returns the embedded tables, or the ones under dir when set.
func loadTables(dir string) (*knowledge.Tables, error) {
	if dir == "" {
		return knowledge.Default()
	}
	return knowledge.Load(dir)
}
