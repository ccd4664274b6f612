// @title Document Analyzer API
// @version 1.0
// @description Uploads PDF documents, classifies them and reports missing or incomplete information.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"docanalyzer/internal/analyzer"
	"docanalyzer/internal/config"
	"docanalyzer/internal/extractor/pdf"
	"docanalyzer/internal/handler"
	"docanalyzer/internal/llm"
	"docanalyzer/internal/observability/logging"
	"docanalyzer/internal/observability/metrics"
	"docanalyzer/internal/port"
	"docanalyzer/internal/repository/sqlstore"
	"docanalyzer/internal/router"
	"docanalyzer/internal/service"
	"docanalyzer/internal/storage/localfs"
	s3storage "docanalyzer/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := sqlstore.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := sqlstore.Migrate(db, cfg.DB.Driver); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	docRepo := sqlstore.NewDocumentRepo(db)
	resultRepo := sqlstore.NewAnalysisResultRepo(db)

	// Initialize storage
	files, err := localfs.New(cfg.Storage.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}
	var archive port.ObjectStorage
	if cfg.Storage.S3.Enabled() {
		archive, err = s3storage.NewS3Client(context.Background(), &cfg.Storage.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		logger.Info("archiving uploads to S3", zap.String("bucket", cfg.Storage.S3.Bucket))
	}

	// Initialize model client and analyzers
	modelClient, err := llm.NewClient(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize model client: %w", err)
	}
	m := metrics.New()
	classifier := analyzer.NewClassifier(modelClient, m, logger)
	gapAnalyzer := analyzer.NewGapAnalyzer(modelClient, m, logger)

	// Initialize services
	docSvc := service.NewDocumentService(
		docRepo,
		resultRepo,
		files,
		archive,
		pdf.NewExtractor(logger),
		classifier,
		gapAnalyzer,
		&cfg.Storage,
		&cfg.Analysis,
		logger,
	)

	// Initialize handlers
	docH := handler.NewDocumentHandler(docSvc, cfg.Storage.MaxFileSizeMB*1024*1024, logger)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(docH, healthH, m, cfg.CORS.AllowedOrigins, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.String("llm_model", modelClient.Model()),
			zap.String("db_driver", cfg.DB.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
