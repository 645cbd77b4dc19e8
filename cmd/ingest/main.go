package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/inventopredict/backend-go/internal/cache"
	"github.com/inventopredict/backend-go/internal/config"
	"github.com/inventopredict/backend-go/internal/dataset"
	"github.com/inventopredict/backend-go/internal/feature"
	"github.com/inventopredict/backend-go/internal/ingest"
	"github.com/inventopredict/backend-go/internal/predictor"
	"github.com/inventopredict/backend-go/internal/service"
	"github.com/inventopredict/backend-go/internal/storage"
	"github.com/inventopredict/backend-go/pkg/logger"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	log := logger.Component("ingest")

	// Initialize object storage client
	store, err := storage.NewS3Client(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	// The ingest service validates workbooks through the same pipeline the
	// API serves from, so a broken upload never becomes the live dataset.
	scorer, err := predictor.LoadModelFile(cfg.App.ModelPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load demand model")
	}

	loader := dataset.NewLoader(cfg.App.FestivalCSVPath)
	builder := feature.NewBuilder()
	pred := predictor.New(scorer, nil)
	predictionService := service.NewPredictionService(
		loader, builder, pred, cache.NewNoopDashboardCache(), cfg.App.LatestDataset, nil)

	downloadDir := filepath.Join(cfg.App.DataDir, "datasets")
	watcher := ingest.NewWatcher(store, predictionService, cfg.Storage.Prefix, downloadDir, 5*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	// Create router
	r := mux.NewRouter()

	// Register routes
	ingestHandler := ingest.NewHandler(watcher)
	ingestHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Ingest service starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start ingest service")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
