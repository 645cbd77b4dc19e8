package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inventopredict/backend-go/internal/api"
	"github.com/inventopredict/backend-go/internal/cache"
	"github.com/inventopredict/backend-go/internal/config"
	"github.com/inventopredict/backend-go/internal/dataset"
	"github.com/inventopredict/backend-go/internal/feature"
	"github.com/inventopredict/backend-go/internal/notify"
	"github.com/inventopredict/backend-go/internal/predictor"
	"github.com/inventopredict/backend-go/internal/repository/postgres"
	"github.com/inventopredict/backend-go/internal/service"
	"github.com/inventopredict/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	reminderRepo := postgres.NewReminderRepository(db)
	if err := reminderRepo.EnsureSchema(context.Background()); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to ensure reminder schema")
	}

	// The trained demand model is consumed as an opaque artifact.
	scorer, err := predictor.LoadModelFile(cfg.App.ModelPath)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("path", cfg.App.ModelPath).Msg("Failed to load demand model")
	}

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Dashboard cache unavailable, continuing without it")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	// Initialize services
	loader := dataset.NewLoader(cfg.App.FestivalCSVPath)
	builder := feature.NewBuilder()
	pred := predictor.New(scorer, nil)
	predictionService := service.NewPredictionService(loader, builder, pred, dashboardCache, cfg.App.LatestDataset, nil)

	notifier := notify.NewSMTPNotifier(cfg.SMTP)
	dispatcher := notify.NewDispatcher(notifier, time.Duration(cfg.SMTP.TimeoutSeconds)*time.Second)
	reminderService := service.NewReminderService(reminderRepo, dispatcher)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Prediction: predictionService,
		Reminder:   reminderService,
	}, cfg.App.UploadDir, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
